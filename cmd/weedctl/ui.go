package main

import (
	"fmt"

	"github.com/fatih/color"

	cl "github.com/cookie-is-yummy/weed/internal/cli"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printError(msg string) {
	danger.Println("error: " + msg)
}

func printRanking(metric string, r cl.Ranking) {
	accent.Printf("top %s\n", metric)
	if len(r.Pages) == 0 {
		neutral.Println("(no entries)")
		return
	}
	for _, row := range r.Pages[0] {
		neutral.Println(row)
	}
	if len(r.Pages) > 1 {
		fmt.Println()
		neutral.Printf("page 1/%d\n", len(r.Pages))
	}
	if r.Position > 0 {
		fmt.Println()
		success.Printf("viewer position: %d\n", r.Position)
	}
}

func printItems(out map[string]any) {
	items, _ := out["items"].([]any)
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		accent.Printf("%v %v", item["emoji"], item["id"])
		neutral.Printf("  worth $%v\n", item["worth"])
	}
}
