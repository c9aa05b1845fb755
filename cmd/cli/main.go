// Command cli plays a hot-seat king-capture game in the terminal.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/benbeisheim/kingchess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	fen := flag.String("fen", "", "start from this FEN instead of the standard setup")
	flag.Parse()

	pos := model.NewPosition()
	if *fen != "" {
		var err error
		if pos, err = model.ParseFEN(*fen); err != nil {
			log.Fatalf("fen: %v", err)
		}
	}

	if err := run(os.Stdin, os.Stdout, pos); err != nil {
		log.Fatal(err)
	}
}

const help = `commands:
  e2 e4      move a piece
  moves e2   list destinations for the piece on e2
  fen        print the position as FEN
  reset      start over
  quit       leave
`

func run(in io.Reader, out io.Writer, pos model.Position) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, help)
	fmt.Fprint(out, pos)

	for {
		fmt.Fprintf(out, "%s> ", pos.ToMove)
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprint(out, help)
		case "fen":
			fmt.Fprintln(out, pos.FEN())
		case "reset":
			pos.Reset()
			fmt.Fprint(out, pos)
		case "moves":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: moves <square>")
				continue
			}
			sq, err := model.ParseSquare(fields[1])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintln(out, pos.LegalDestinations(sq))
		default:
			if len(fields) != 2 {
				fmt.Fprintln(out, "unknown command, type help")
				continue
			}
			if err := playMove(scanner, out, &pos, fields[0], fields[1]); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprint(out, pos)
		}
	}
}

func playMove(scanner *bufio.Scanner, out io.Writer, pos *model.Position, fromArg, toArg string) error {
	from, err := model.ParseSquare(fromArg)
	if err != nil {
		return err
	}
	to, err := model.ParseSquare(toArg)
	if err != nil {
		return err
	}

	outcome, err := pos.PlayMove(from, to)
	if err != nil {
		return err
	}
	if outcome.PendingPromotion != nil {
		choice := promptPromotion(scanner, out, outcome.Options)
		if outcome, err = pos.ResolvePromotion(*outcome.PendingPromotion, choice); err != nil {
			return err
		}
	}
	if outcome.Winner != model.NoColor {
		fmt.Fprintln(out, outcome.Announcement())
	}
	return nil
}

// promptPromotion asks for a menu index. Anything that is not a number counts
// as a dismissed prompt.
func promptPromotion(scanner *bufio.Scanner, out io.Writer, options []model.PieceType) *int {
	fmt.Fprintln(out, "Promote pawn to:")
	for i, o := range options {
		fmt.Fprintf(out, "  %d) %s\n", i, o)
	}
	fmt.Fprint(out, "choice> ")
	if !scanner.Scan() {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil
	}
	return &n
}
