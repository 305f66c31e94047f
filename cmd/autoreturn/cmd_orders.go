package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/autoreturn/autoreturn/src/storage"
	"github.com/autoreturn/autoreturn/src/theme"
)

// OrdersCmd lists a user's orders with their return eligibility.
type OrdersCmd struct {
	User string `default:"usr_1" help:"Customer user ID"`
}

func (o *OrdersCmd) Run(kctx *kong.Context, cli *CLI) error {
	ctx := context.Background()
	appInstance, _, err := initApp(ctx, cli)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	orders, err := storage.ListOrders(ctx, appInstance.Store.DB(), o.User)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("No orders found.")
		return nil
	}

	idStyle := lipgloss.NewStyle().Foreground(theme.CurrentTheme.Primary).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(theme.CurrentTheme.TextMuted)
	now := time.Now()
	for _, order := range orders {
		eligibility := "outside return window"
		if order.EligibleForReturn(now) {
			eligibility = "eligible for return"
		}
		fmt.Printf("%s  %s  %s  $%.2f  %s\n",
			idStyle.Render(order.ID),
			order.OrderedAt.Format("2006-01-02"),
			order.Status,
			order.Total(),
			mutedStyle.Render(eligibility),
		)
		for _, item := range order.Items {
			fmt.Printf("    %dx %s\n", item.Quantity, item.ProductName)
		}
	}
	return nil
}
