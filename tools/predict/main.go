// Command predict runs a head-to-head prediction from the terminal
// without the HTTP server: load the bundle, build the directory from
// CSV files, predict, print the explanation.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/sportstat/tennis-api/internal/dataset"
	"github.com/sportstat/tennis-api/internal/directory"
	"github.com/sportstat/tennis-api/internal/explain"
	"github.com/sportstat/tennis-api/internal/logic"
	"github.com/sportstat/tennis-api/internal/model"
)

func main() {
	var (
		dataDir   = flag.String("data-dir", "data", "directory with atp_matches_YYYY.csv files")
		bundle    = flag.String("model", "tennis_model.json", "trained model bundle")
		year      = flag.Int("year", 2024, "season used to build the player directory")
		surface   = flag.String("surface", "hard", "court surface: hard, clay or grass")
		grandSlam = flag.Bool("grand-slam", false, "treat as a Grand Slam match")
		masters   = flag.Bool("masters", false, "treat as a Masters 1000 match")
		list      = flag.Bool("list", false, "list known players and exit")
	)
	flag.Parse()

	logger := zap.NewNop()

	mdl, err := model.Load(*bundle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load model: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	source := dataset.NewCSVSource(*dataDir, logger)
	snap, err := directory.NewBuilder(source, nil, logger).BuildSeason(ctx, *year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build directory: %v\n", err)
		os.Exit(1)
	}

	svc := logic.NewPredictionService(snap, mdl, explain.DefaultThresholds(), logger)

	if *list {
		for _, name := range snap.Names() {
			fmt.Println(name)
		}
		return
	}

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: predict [flags] <player1> <player2>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	result, err := svc.PredictMatch(ctx, flag.Arg(0), flag.Arg(1), *surface, *grandSlam, *masters)
	if err != nil {
		fmt.Fprintf(os.Stderr, "predict: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%s vs %s (%s, %s)\n\n",
		result.Player1.Name, result.Player2.Name, result.Surface, result.TournamentType)
	fmt.Printf("  %-24s %5.1f%%\n", result.Player1.Name, result.P1WinProb)
	fmt.Printf("  %-24s %5.1f%%\n\n", result.Player2.Name, result.P2WinProb)
	fmt.Printf("Predicted winner: %s\n\n", result.PredictedWinner)
	for _, line := range result.Explanation {
		fmt.Println(line)
	}
}
