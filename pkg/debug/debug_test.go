package debug

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
)

type sample struct {
	Alpha int
	Beta  string
	gamma bool
}

func (sample) Delta() {}
func (sample) Eps()   {}

func TestMembers(t *testing.T) {
	got := Members(sample{})
	want := []string{"Alpha", "Beta", "Delta", "Eps", "gamma"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Members() = %v, want %v", got, want)
	}
	if Members(nil) != nil {
		t.Fatal("Members(nil) should be nil")
	}
}

func TestObjInfo(t *testing.T) {
	var buf bytes.Buffer
	ObjInfo(&buf, sample{Alpha: 1, Beta: "b"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "Object: {1 b false}" {
		t.Errorf("unexpected object line %q", lines[0])
	}
	if lines[1] != "Type: debug.sample" {
		t.Errorf("unexpected type line %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Size: ") || !strings.HasSuffix(lines[2], " bytes") {
		t.Errorf("unexpected size line %q", lines[2])
	}
	if lines[3] != "Functions:" {
		t.Fatalf("missing Functions header, got %q", lines[3])
	}
	// Alpha Beta Delta / Eps gamma
	wantRow0 := "Alpha" + strings.Repeat(" ", 25) + "Beta" + strings.Repeat(" ", 26) + "Delta"
	if lines[4] != wantRow0 {
		t.Errorf("row 0 = %q, want %q", lines[4], wantRow0)
	}
	wantRow1 := "Eps" + strings.Repeat(" ", 27) + "gamma"
	if lines[5] != wantRow1 {
		t.Errorf("row 1 = %q, want %q", lines[5], wantRow1)
	}
}

func TestObjInfoNil(t *testing.T) {
	var buf bytes.Buffer
	ObjInfo(&buf, nil)
	if !strings.Contains(buf.String(), "Size: 0 bytes") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestTimed(t *testing.T) {
	var buf bytes.Buffer
	f := Timed(&buf, "answer", func() int { return 42 })
	if got := f(); got != 42 {
		t.Fatalf("Timed returned %d", got)
	}
	re := regexp.MustCompile(`^Function answer Time = [ \d]+\.\d{3}ms\n$`)
	if !re.MatchString(buf.String()) {
		t.Errorf("unexpected timing line %q", buf.String())
	}

	buf.Reset()
	boom := errors.New("boom")
	if err := TimedErr(&buf, "fail", func() error { return boom })(); err != boom {
		t.Errorf("TimedErr should return the wrapped error, got %v", err)
	}
}
