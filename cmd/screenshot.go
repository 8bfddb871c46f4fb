package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the device screen",
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("out", "", "Output file (required)")
	screenshotCmd.Flags().String("image-format", "png", "Image format: png or jpg")
	screenshotCmd.Flags().Int("quality", 80, "JPEG quality 1-100 (ignored for PNG)")
	screenshotCmd.Flags().Float64("scale", 0.5, "Scale factor 0.1-1.0")
	screenshotCmd.MarkFlagRequired("out")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	if provider.Screenshotter == nil {
		return fmt.Errorf("screenshots not available on this backend")
	}
	out, _ := cmd.Flags().GetString("out")
	imageFormat, _ := cmd.Flags().GetString("image-format")
	quality, _ := cmd.Flags().GetInt("quality")
	scale, _ := cmd.Flags().GetFloat64("scale")

	data, err := provider.Screenshotter.Capture(imageFormat, quality, scale)
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0644)
}
