package cmd

import (
	"github.com/Taichi-iskw/yt-export/cmd/export"
)

func init() {
	rootCmd.AddCommand(export.NewExportCommand(export.NewServiceFactory()))
}
