//go:build gocv

package cmd

import (
	"github.com/yeisme/tooled/pkg/imaging"
	"github.com/yeisme/tooled/pkg/imaging/opencv"
)

func loadImageBackend() (*imageBackend, error) {
	return &imageBackend{
		Name:  "opencv",
		Ops:   opencv.Ops{},
		Blobs: opencv.Detector{},
		Load: func(path string, gray bool) (imaging.Image, error) {
			return opencv.Read(path, gray)
		},
		Save:     opencv.Write,
		Convolve: opencv.Convolve,
	}, nil
}
