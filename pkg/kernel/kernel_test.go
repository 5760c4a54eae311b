package kernel

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestGetSharp(t *testing.T) {
	k, err := Get("sharp")
	if err != nil {
		t.Fatalf("Get(sharp) returned an error: %v", err)
	}
	want := Kernel{{0, -1, 0}, {-1, 5, -1}, {0, -1, 0}}
	if !reflect.DeepEqual(k, want) {
		t.Errorf("Expected %v, got %v", want, k)
	}
	if k.Size() != 3 || k.Sum() != 1 {
		t.Errorf("size %d sum %d", k.Size(), k.Sum())
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("nonexistent")
	if !errors.Is(err, ErrUnknownKernel) {
		t.Fatalf("expected ErrUnknownKernel, got %v", err)
	}
}

func TestGetSuggestsNames(t *testing.T) {
	_, err := Get("embos")
	if !errors.Is(err, ErrUnknownKernel) {
		t.Fatalf("expected ErrUnknownKernel, got %v", err)
	}
	if !strings.Contains(err.Error(), "emboss") {
		t.Fatalf("expected suggestion in %q", err.Error())
	}

	if got := Suggest("sharpen"); len(got) == 0 || got[0] != "sharp" {
		t.Fatalf("Suggest(sharpen) = %v", got)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	k, _ := Get("ridge")
	k[1][1] = 0
	again, _ := Get("ridge")
	if again[1][1] != 8 {
		t.Fatalf("lookup table was mutated: %v", again)
	}
}

func TestAllKernelsSquareOdd(t *testing.T) {
	names := Names()
	if len(names) != 6 {
		t.Fatalf("expected 6 kernels, got %v", names)
	}
	for _, name := range names {
		k, err := Get(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if k.Size()%2 != 1 {
			t.Fatalf("%s: even size %d", name, k.Size())
		}
		for _, row := range k {
			if len(row) != k.Size() {
				t.Fatalf("%s: not square", name)
			}
		}
		if got := len(k.Float32()); got != k.Size()*k.Size() {
			t.Fatalf("%s: float32 len %d", name, got)
		}
	}
}

func TestImageJKernelSumsToZero(t *testing.T) {
	k, _ := Get("imagej")
	if k.Sum() != 0 {
		t.Fatalf("imagej sum %d", k.Sum())
	}
	if k.Rows()[2][2] != "24" {
		t.Fatalf("center %q", k.Rows()[2][2])
	}
}

func TestKernelString(t *testing.T) {
	k, err := Get("sharp")
	if err != nil {
		t.Fatal(err)
	}
	want := " 0 -1  0\n-1  5 -1\n 0 -1  0\n"
	if got := k.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
