package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) Upload(ctx context.Context, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		entered, err := getSimpleText(a.reader, "Enter the file path", os.Stdout)
		if err != nil {
			return err
		}
		path = entered
	}

	desc, err := a.media.UploadFile(ctx, path)
	if err != nil {
		log.Printf("upload failed: %s", err.Error())
		return err
	}

	fmt.Printf("Uploaded %s (%d bytes, %s)\n", desc.URL, desc.Size, desc.MimeType)
	fmt.Printf("sha256: %s\n", desc.SHA256)
	return nil
}

func (a *App) Relays(ctx context.Context) error {
	fmt.Println("Relays:")
	for _, u := range a.config.RelayURLs {
		fmt.Println("  " + u)
	}
	fmt.Println("Blob servers:")
	for _, u := range a.config.BlobServerURLs {
		fmt.Println("  " + u)
	}
	return nil
}
