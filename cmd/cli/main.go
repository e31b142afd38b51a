package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/iamasit07/connect4-cpu/internal/config"
	"github.com/iamasit07/connect4-cpu/internal/console"
	"github.com/iamasit07/connect4-cpu/internal/domain"
	"github.com/iamasit07/connect4-cpu/internal/repository/memory"
	"github.com/iamasit07/connect4-cpu/internal/service/bot"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	depth := flag.Int("depth", cfg.SearchDepth, "plies the computer looks ahead (1-8)")
	botFirst := flag.Bool("bot-first", false, "let the computer open the game")
	verbose := flag.Bool("v", false, "log search statistics")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	first := domain.Player1
	if *botFirst {
		first = domain.Player2
	}

	g := domain.NewGame(first)
	botService := bot.NewService(domain.Player2, memory.NewCache(), 0)
	in := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for !g.IsFinished() {
		var col int
		var err error
		if g.CurrentPlayer == domain.Player1 {
			col, err = console.ReadColumn(in, os.Stdout, &g.Board)
		} else {
			col, err = botService.Decide(ctx, g.Board, *depth)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		mover := g.CurrentPlayer
		if _, err := g.MakeMove(mover, col); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if mover == domain.Player2 || g.IsFinished() {
			console.Render(os.Stdout, &g.Board)
		}
	}

	switch g.Status {
	case domain.StatusWon:
		fmt.Printf("%s wins!\n", g.Winner.Symbol())
	case domain.StatusDraw:
		fmt.Println("It's a draw!")
	}
	fmt.Printf("Moves: %v\n", g.Moves)
}
