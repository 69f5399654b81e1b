package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// progressPrinter reports per-relay outcomes as they come in.
func progressPrinter(completed, total int, status string) {
	fmt.Printf("[%d/%d] %s\n", completed, total, status)
}

func (a *App) Publish(ctx context.Context) error {
	content, err := GetMultiline(a.reader, "Enter the text to publish", os.Stdout)
	if err != nil {
		return err
	}

	result, err := a.content.PublishNote(ctx, content, progressPrinter)
	if err != nil {
		log.Printf("Publish failed: %s", err.Error())
		return err
	}

	fmt.Printf("Published %s to %d of %d relays\n",
		result.EventID, len(result.Published), len(result.Published)+len(result.Failed))
	return nil
}
