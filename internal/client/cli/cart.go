package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/dmitrijs2005/satchel/internal/client/models"
	"github.com/dmitrijs2005/satchel/internal/common"
)

func printSnapshot(snap *models.CartSnapshot) {
	if len(snap.Items) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for _, item := range snap.Items {
		fmt.Printf("  %s  x%d  @%d sats\n", item.ProductID, item.Quantity, item.UnitPriceSats)
	}
	fmt.Printf("Total: %d items, %d sats\n", snap.ItemCount, snap.TotalSats)
}

// Cart dispatches the cart subcommands: bare "cart" shows the local
// snapshot, "add"/"rm" edit it, "clear" drops it, "sync" reconciles
// against the relays.
func (a *App) Cart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		snap, err := a.cartSvc.View(ctx, common.DefaultCartKey)
		if err != nil {
			log.Printf("error: %s", err.Error())
			return err
		}
		printSnapshot(snap)
		return nil
	}

	switch args[0] {
	case "add":
		return a.cartAdd(ctx, args[1:])
	case "rm":
		return a.cartRemove(ctx, args[1:])
	case "clear":
		return a.cartClear(ctx)
	case "sync":
		return a.cartSync(ctx)
	default:
		fmt.Println("Usage: cart | cart add <product> <qty> <price-sats> | cart rm <product> | cart clear | cart sync")
		return nil
	}
}

func (a *App) cartAdd(ctx context.Context, args []string) error {
	if len(args) != 3 {
		fmt.Println("Usage: cart add <product> <qty> <price-sats>")
		return nil
	}

	qty, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("qty must be a number")
		return nil
	}
	price, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		fmt.Println("price must be a number of sats")
		return nil
	}

	snap, err := a.cartSvc.AddItem(ctx, common.DefaultCartKey, args[0], qty, price)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}
	printSnapshot(snap)
	return nil
}

func (a *App) cartRemove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Println("Usage: cart rm <product>")
		return nil
	}

	snap, err := a.cartSvc.RemoveItem(ctx, common.DefaultCartKey, args[0])
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}
	printSnapshot(snap)
	return nil
}

func (a *App) cartClear(ctx context.Context) error {
	if err := a.cartSvc.Clear(ctx, common.DefaultCartKey); err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}
	fmt.Println("Cart cleared")
	return nil
}

func (a *App) cartSync(ctx context.Context) error {
	snap, err := a.cartSvc.Sync(ctx, common.DefaultCartKey, progressPrinter)
	if err != nil {
		log.Printf("sync error: %s", err.Error())
		if snap == nil {
			return err
		}
		// merged state was still persisted locally
	}
	printSnapshot(snap)
	return err
}
