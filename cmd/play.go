package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cert-quiz/config"
	"cert-quiz/exam"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take the quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		src, closeSource, err := newSource(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeSource()

		fmt.Fprintln(cmd.OutOrStdout(), "Loading question bank...")
		questions, err := src.LoadQuestions(ctx)
		if err != nil {
			return err
		}
		session := newSession(cfg)
		session.LoadBank(questions)
		return newPlayer(session, cmd.InOrStdin(), cmd.OutOrStdout()).run()
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// player drives a session from line-based terminal input.
type player struct {
	s   *exam.Session
	in  *bufio.Scanner
	out io.Writer
}

func newPlayer(s *exam.Session, in io.Reader, out io.Writer) *player {
	return &player{s: s, in: bufio.NewScanner(in), out: out}
}

func (p *player) run() error {
	p.render()
	for p.in.Scan() {
		line := strings.TrimSpace(p.in.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" {
			fmt.Fprintln(p.out, "Bye!")
			return nil
		}
		if err := p.handle(line); err != nil {
			fmt.Fprintf(p.out, "! %v\n", err)
		}
		p.render()
	}
	return p.in.Err()
}

func (p *player) handle(line string) error {
	switch p.s.Stage() {
	case exam.StageHome:
		if line == "s" || line == "start" {
			return p.s.Start()
		}
	case exam.StageQuiz:
		switch line {
		case "n", "next":
			return p.s.Next()
		case "p", "prev", "previous":
			return p.s.Previous()
		case "finish":
			return p.s.Finish()
		default:
			return p.s.Select(strings.ToUpper(line))
		}
	case exam.StageSummary:
		if line == "h" || line == "home" {
			return p.s.Home()
		}
		if rest, ok := strings.CutPrefix(line, "r"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return errors.New("usage: r <question number>")
			}
			return p.s.Review(n - 1)
		}
	case exam.StageReviewing:
		switch line {
		case "b", "back":
			return p.s.BackToSummary()
		case "h", "home":
			return p.s.Home()
		}
	}
	return fmt.Errorf("unknown command %q", line)
}

func (p *player) render() {
	switch p.s.Stage() {
	case exam.StageHome:
		fmt.Fprintln(p.out, "\n== AWS Certification Quiz ==")
		if !p.s.Loaded() {
			fmt.Fprintln(p.out, "No questions available.")
			return
		}
		fmt.Fprintf(p.out, "%d questions per attempt from a bank of %d.\n", p.s.Len(), p.s.BankSize())
		fmt.Fprintln(p.out, "[s] start  [q] quit")
	case exam.StageQuiz:
		snap := p.s.Snapshot()
		view := snap.Current
		fmt.Fprintf(p.out, "\nQuestion %d of %d (%d%% complete)\n", view.Number, view.Total, snap.ProgressPercent)
		fmt.Fprint(p.out, view.Text)
		if view.Multiple {
			fmt.Fprint(p.out, " (Select all that apply)")
		}
		fmt.Fprintln(p.out)
		for _, o := range view.Options {
			mark := " "
			if o.Selected {
				mark = "x"
			}
			fmt.Fprintf(p.out, "  [%s] %s\n", mark, o.Text)
		}
		nav := "[letter] select"
		if !snap.IsFirst {
			nav += "  [p] previous"
		}
		if snap.IsLast {
			nav += "  [finish] finish quiz"
		} else {
			nav += "  [n] next"
		}
		fmt.Fprintln(p.out, nav+"  [q] quit")
	case exam.StageSummary:
		sum, err := p.s.Summary()
		if err != nil {
			return
		}
		fmt.Fprintf(p.out, "\n== Quiz Summary ==\nYour Score: %s%% (%d correct out of %d), you need %.0f%% to pass.\n",
			sum.ScoreText, sum.CorrectCount, sum.Total, sum.PassingScore)
		for _, item := range sum.Items {
			mark := "✗"
			if item.Correct {
				mark = "✓"
			}
			fmt.Fprintf(p.out, "  %s %d. %s\n", mark, item.Number, item.Excerpt)
		}
		fmt.Fprintln(p.out, "[r <n>] review question  [h] home  [q] quit")
	case exam.StageReviewing:
		rv, err := p.s.ReviewView()
		if err != nil {
			return
		}
		fmt.Fprintf(p.out, "\nQuestion %d of %d\n%s\n", rv.Question.Number, rv.Question.Total, rv.Question.Text)
		for _, o := range rv.Question.Options {
			mark := " "
			if o.Selected {
				mark = "x"
			}
			note := ""
			switch o.Status {
			case "correct":
				note = "  <- correct"
			case "wrong":
				note = "  <- your answer, wrong"
			}
			fmt.Fprintf(p.out, "  [%s] %s%s\n", mark, o.Text, note)
		}
		fmt.Fprintln(p.out, "[b] back to summary  [h] home  [q] quit")
	}
}
