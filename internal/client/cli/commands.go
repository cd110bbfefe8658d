package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/itemgallery/backend/internal/client/api"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	nickName, err := GetSimpleText(a.reader, "Enter nickname (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.client.Register(ctx, email, password, nickName); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Registered and logged in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.client.Login(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintf(a.out, "#%d %s %s\n", user.ID, user.Email, user.NickName)
	return nil
}

func (a *App) List(ctx context.Context) error {
	items, err := a.client.ListItems(ctx, 0, 50)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	a.printItems(items)
	return nil
}

func (a *App) My(ctx context.Context) error {
	items, err := a.client.MyItems(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	a.printItems(items)
	return nil
}

func (a *App) Show(ctx context.Context) error {
	id, err := a.promptID()
	if err != nil {
		return err
	}

	item, err := a.client.GetItem(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "#%d %s\n", item.ID, item.Title)
	if item.Description != "" {
		fmt.Fprintln(a.out, item.Description)
	}
	if len(item.Images) > 0 {
		urls, err := a.client.ItemImages(ctx, item.ID)
		if err != nil {
			fmt.Fprintln(a.out, err.Error())
			return err
		}
		for _, url := range urls {
			fmt.Fprintln(a.out, "  "+url)
		}
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(a.out, "Title is required")
		return nil
	}
	description, err := GetSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}

	created, err := a.client.CreateItem(ctx, &api.Item{Title: title, Description: description})
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Created item #%d\n", created.ID)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := a.promptID()
	if err != nil {
		return err
	}

	if err := a.client.DeleteItem(ctx, id); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) promptID() (int64, error) {
	raw, err := GetSimpleText(a.reader, "Enter item id", a.out)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid id")
		return 0, err
	}
	return id, nil
}

func (a *App) printItems(items []api.Item) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items.")
		return
	}
	for _, item := range items {
		fmt.Fprintf(a.out, "#%d %s (%d images)\n", item.ID, item.Title, len(item.Images))
	}
}
