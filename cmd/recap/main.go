package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/recapdev/recap/internal/analytics"
	"github.com/recapdev/recap/internal/config"
	"github.com/recapdev/recap/internal/keymap"
	"github.com/recapdev/recap/internal/review"
	"github.com/recapdev/recap/internal/storage"
	"github.com/recapdev/recap/internal/sync"
)

func main() {
	def := config.Default()
	flags := pflag.NewFlagSet("recap", pflag.ExitOnError)
	configPath := flags.String("config", "recap.yaml", "Path to the YAML config file")
	flags.String("db", def.DB, "Path to the SQLite database file")
	flags.String("repos", def.Repos, "Directory for git deck-source checkouts")
	addSource := flags.String("add-source", "", "Register a deck source (local path or git URL)")
	runSync := flags.Bool("sync", false, "Reconcile all deck sources into the database")
	listDecks := flags.Bool("list", false, "List stored decks")
	reviewDeck := flags.String("review", "", "Start a review session for the given deck ID")
	showStats := flags.Bool("stats", false, "Print study analytics")
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DB, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	switch {
	case *addSource != "":
		sourceType := "local"
		if sync.IsGitURL(*addSource) {
			sourceType = "git"
		}
		if _, err := db.InsertSource(*addSource, sourceType); err != nil {
			slog.Error("failed to add source", "path", *addSource, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Added %s source: %s\n", sourceType, *addSource)

	case *runSync:
		if err := sync.Run(db, cfg.Repos); err != nil {
			slog.Error("sync failed", "error", err)
			os.Exit(1)
		}

	case *listDecks:
		decks, err := db.ListDecks()
		if err != nil {
			slog.Error("failed to list decks", "error", err)
			os.Exit(1)
		}
		if len(decks) == 0 {
			fmt.Println("No decks stored. Run --sync after adding a source.")
			return
		}
		for _, d := range decks {
			fmt.Printf("%s\t%s\n", d.ID, d.Name)
		}

	case *showStats:
		printStats(db)

	case *reviewDeck != "":
		runReview(db, *reviewDeck, time.Duration(cfg.ResetTimeoutMS)*time.Millisecond)

	default:
		flags.Usage()
	}
}

// runReview drives one interactive study session over a deck.
func runReview(db *storage.DB, deckID string, resetTimeout time.Duration) {
	d, err := db.GetDeck(deckID)
	if err != nil {
		slog.Error("failed to load deck", "deck", deckID, "error", err)
		os.Exit(1)
	}
	if d == nil {
		fmt.Printf("Deck %q not found. Use --list to see stored decks.\n", deckID)
		os.Exit(1)
	}

	sched := review.New(d.ID, d.Questions, review.Config{Recorder: db})
	if sched.State() == review.Empty {
		fmt.Printf("Deck %q has no questions.\n", d.Name)
		return
	}

	keys := keymap.New(resetTimeout)
	reader := bufio.NewReader(os.Stdin)
	revealed := false

	fmt.Printf("Reviewing %q (%d cards). Space flips, 1-4 rates, rr restarts.\n\n", d.Name, sched.Remaining())
	presentCard(sched.Head(), revealed)

	for sched.State() == review.Active {
		line, err := reader.ReadString('\n')
		if err != nil {
			return // Abandoned; nothing is persisted.
		}
		key := '\n'
		for _, r := range line {
			key = r
			break
		}

		switch ev := keys.Press(key); ev.Kind {
		case keymap.Flip:
			revealed = !revealed
			presentCard(sched.Head(), revealed)

		case keymap.Rate:
			if !revealed {
				continue // Rating before seeing the answer is meaningless.
			}
			next, completed := sched.SubmitRating(ev.Rating)
			revealed = false
			if !completed {
				presentCard(next, revealed)
			}

		case keymap.Reset:
			sched.Reset()
			revealed = false
			fmt.Printf("\nSession restarted (%d cards).\n\n", sched.Remaining())
			presentCard(sched.Head(), revealed)
		}
	}

	tally := sched.Ratings()
	fmt.Printf("\nSession complete: %d reviews, %d cards mastered.\n", sched.CardsReviewed(), sched.CardsMastered())
	fmt.Printf("Ratings: %d again, %d hard, %d good, %d easy.\n", tally.Again, tally.Hard, tally.Good, tally.Easy)
}

// presentCard prints the question side, or the answer side once flipped.
func presentCard(c *review.Card, revealed bool) {
	if c == nil {
		return
	}
	if !revealed {
		fmt.Printf("Q: %s\n", c.Question.Question)
		if c.Question.ImageURL != "" {
			fmt.Printf("   [image: %s]\n", c.Question.ImageURL)
		}
		for i, o := range c.Question.Options {
			fmt.Printf("   %d) %s\n", i+1, o)
		}
		for _, o := range c.Question.OrderItems {
			fmt.Printf("   - %s\n", o)
		}
		fmt.Print("(space to flip) ")
		return
	}

	fmt.Printf("A: %s\n", c.Question.Answer)
	for _, p := range c.Question.MatchPairs {
		fmt.Printf("   %s = %s\n", p.Left, p.Right)
	}
	if len(c.Question.CorrectAnswers) > 0 {
		fmt.Printf("   correct: %v\n", c.Question.CorrectAnswers)
	}
	fmt.Print("(rate 1-4) ")
}

// printStats loads the full history and prints the three analytics reports.
func printStats(db *storage.DB) {
	sessions, err := db.ListSessions()
	if err != nil {
		slog.Error("failed to load sessions", "error", err)
		os.Exit(1)
	}
	stats, err := db.ListDailyStats()
	if err != nil {
		slog.Error("failed to load daily stats", "error", err)
		os.Exit(1)
	}

	now := time.Now()
	streaks := analytics.Streaks(stats, now)
	fmt.Printf("Streak: %d current, %d longest", streaks.CurrentStreak, streaks.LongestStreak)
	if streaks.LastStudyDate != "" {
		fmt.Printf(", last studied %s", streaks.LastStudyDate)
	}
	fmt.Println()

	eff := analytics.Efficiency(sessions, stats)
	fmt.Printf("Reviewed %d cards over %d minutes (%.2f cards/min, %.1fs per card)\n",
		eff.TotalCardsReviewed, eff.TotalStudyTime, eff.CardsPerMinute, eff.AverageTimePerCard)
	if eff.PeakHour != nil {
		fmt.Printf("Peak study hour: %02d:00\n", *eff.PeakHour)
	}

	curve := analytics.RetentionCurve(sessions, now)
	if len(curve) > 0 {
		fmt.Println("Retention by session age:")
		for _, p := range curve {
			fmt.Printf("  %2dd ago: %5.1f%% (%d ratings)\n", p.DaysSinceReview, p.RetentionRate*100, p.SampleSize)
		}
	}
}
