package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yeisme/tooled/pkg/imaging"
	"github.com/yeisme/tooled/pkg/indicator"
	"github.com/yeisme/tooled/pkg/kernel"
	"github.com/yeisme/tooled/pkg/style"
)

var (
	imageSigma  float64
	imageKernel string
	imageStack  bool
	blobParams  = imaging.DefaultBlobParams()

	imageCmd = &cobra.Command{
		Use:     "image",
		Short:   "Image operations through the image runtime",
		Aliases: []string{"img"},
	}

	imageGaussSubCmd = &cobra.Command{
		Use:   "gauss-sub <input> <output>",
		Short: "Subtract the image from its gaussian blur (background estimate)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transformImage(cmd, args, "Subtracting background...", func(b *imageBackend, img imaging.Image) (imaging.Image, error) {
				p := imaging.NewProcessor(b.Ops)
				if imageStack {
					return p.GaussSubStack(img, imageSigma)
				}
				return p.GaussSub(img, imageSigma)
			})
		},
	}

	imageInvertCmd = &cobra.Command{
		Use:   "invert <input> <output>",
		Short: "Invert an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transformImage(cmd, args, "Inverting...", func(b *imageBackend, img imaging.Image) (imaging.Image, error) {
				return imaging.NewProcessor(b.Ops).Invert(img)
			})
		},
	}

	imageConvolveCmd = &cobra.Command{
		Use:   "convolve <input> <output>",
		Short: "Convolve an image with a named kernel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kernel.Get(imageKernel)
			if err != nil {
				return err
			}
			return transformImage(cmd, args, "Convolving...", func(b *imageBackend, img imaging.Image) (imaging.Image, error) {
				return b.Convolve(img, k)
			})
		},
	}

	imageBlobsCmd = &cobra.Command{
		Use:   "blobs <input>",
		Short: "Detect blobs and print their centre and radius",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := loadImageBackend()
			if err != nil {
				return err
			}
			img, err := backend.Load(args[0], true)
			if err != nil {
				return err
			}
			blobs, err := imaging.FindBlobs(backend.Blobs, img, blobParams)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(blobs))
			for _, b := range blobs {
				rows = append(rows, []string{fmtFloat(b.Y), fmtFloat(b.X), fmtFloat(b.Radius)})
			}
			if err := style.PrintTable(cmd.OutOrStdout(), []string{"Y", "X", "Radius"}, rows, 0); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d blobs\n", len(blobs))
			return nil
		},
	}
)

// transformImage 读取输入、在加载动画中执行 op、写出结果
func transformImage(cmd *cobra.Command, args []string, message string, op func(*imageBackend, imaging.Image) (imaging.Image, error)) error {
	backend, err := loadImageBackend()
	if err != nil {
		return err
	}
	img, err := backend.Load(args[0], false)
	if err != nil {
		return err
	}

	cfg, err := indicatorConfig(tooledCtx.Config.Indicator)
	if err != nil {
		return err
	}
	cfg.StartMessage = message

	var out imaging.Image
	err = indicator.Run(cfg, func() error {
		var opErr error
		out, opErr = op(backend, img)
		return opErr
	}, indicator.WithWriter(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	return backend.Save(args[1], out)
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageGaussSubCmd, imageInvertCmd, imageConvolveCmd, imageBlobsCmd)

	imageGaussSubCmd.Flags().Float64Var(&imageSigma, "sigma", 2, "gaussian sigma")
	imageGaussSubCmd.Flags().BoolVar(&imageStack, "stack", false, "process each channel separately")
	imageConvolveCmd.Flags().StringVarP(&imageKernel, "kernel", "k", "sharp", "kernel name (see `tooled kernel list`)")

	imageBlobsCmd.Flags().Float64Var(&blobParams.MinSigma, "min-sigma", blobParams.MinSigma, "minimum sigma")
	imageBlobsCmd.Flags().Float64Var(&blobParams.MaxSigma, "max-sigma", blobParams.MaxSigma, "maximum sigma")
	imageBlobsCmd.Flags().IntVar(&blobParams.NumSigma, "num-sigma", blobParams.NumSigma, "number of sigma steps")
	imageBlobsCmd.Flags().Float64Var(&blobParams.Threshold, "threshold", blobParams.Threshold, "detection threshold")
}
