//go:build !gocv

package cmd

func loadImageBackend() (*imageBackend, error) {
	return nil, errNoImageRuntime
}
