// Package metrics holds the Prometheus instruments of the hangman server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GamesStarted counts new sessions by mode.
	GamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangman_games_started_total",
		Help: "Games started by mode",
	}, []string{"mode"})

	// GamesFinished counts sessions reaching won or lost.
	GamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangman_games_finished_total",
		Help: "Games finished by mode and outcome",
	}, []string{"mode", "state"})

	// Guesses counts accepted guesses: "hit" revealed letters, "miss" cost a guess.
	Guesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangman_guesses_total",
		Help: "Accepted guesses by outcome",
	}, []string{"outcome"})

	// GuessErrors counts rejected guesses by reason.
	GuessErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangman_guess_errors_total",
		Help: "Rejected guesses by error type",
	}, []string{"error_type"})

	// CandidatesLeft tracks the candidate family kept after each guess.
	CandidatesLeft = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hangman_candidates_left",
		Help:    "Candidate words remaining after a guess",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	// LiveSessions is the number of sessions in the in-memory store.
	LiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hangman_live_sessions",
		Help: "Sessions currently held in memory",
	})
)

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// RecordGuess updates the guess instruments for one accepted guess.
func RecordGuess(occurrences, candidatesLeft int) {
	outcome := "hit"
	if occurrences == 0 {
		outcome = "miss"
	}
	Guesses.WithLabelValues(outcome).Inc()
	CandidatesLeft.Observe(float64(candidatesLeft))
}
