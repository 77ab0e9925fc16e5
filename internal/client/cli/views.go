package cli

import (
	"context"
	"fmt"
)

// listTractors prints one of the two catalogs; condition is "nuovi" or
// "usati", q optionally filters by name.
func (a *App) listTractors(ctx context.Context, condition, q string) error {
	items, err := a.api.ListTractors(ctx, condition, q)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	if len(items) == 0 {
		fmt.Println("No tractors found")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%4d  %-30s  %10.2f EUR  qty %d\n", item.ID, item.Name, item.Price, item.Quantity)
	}
	return nil
}

// listAudit prints a page of the activity feed, newest first.
func (a *App) listAudit(ctx context.Context, page int) error {
	feed, err := a.api.ListAudit(ctx, page, 25)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	if len(feed.Items) == 0 {
		fmt.Println("No activity yet")
		return nil
	}

	for _, rec := range feed.Items {
		fmt.Printf("%s  %-20s %-25s %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Action, rec.Entity, rec.UserEmail)
	}
	fmt.Printf("(%d of %d records)\n", len(feed.Items), feed.Total)
	return nil
}

// listUsers prints a page of the user directory.
func (a *App) listUsers(ctx context.Context, page int) error {
	users, err := a.api.ListUsers(ctx, page, 25)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	for _, u := range users.Items {
		fmt.Printf("%4d  %-25s %s\n", u.ID, u.Name, u.Email)
	}
	fmt.Printf("(page %d of %d, %d users)\n", page, users.Pagination.Pages, users.Pagination.Total)
	return nil
}
