package metrics

import (
	"expvar"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Expvar counters
	DiscordMessageReceived = expvar.NewInt("discord_message_received")
	DiscordMessageSent     = expvar.NewInt("discord_message_sent")
	MessageStored          = expvar.NewInt("message_stored")
	KarmaEventCount        = expvar.NewInt("karma_event_count")
	EmptyLLMResponse       = expvar.NewInt("empty_llm_response_count")
	SuccessfulLLMGen       = expvar.NewInt("successful_llm_gen_count")
	FailedLLMGen           = expvar.NewInt("failed_llm_gen_count")
	SummarySuccessCount    = expvar.NewInt("summary_success_count")
	SummaryFailCount       = expvar.NewInt("summary_fail_count")
	DuplicateSuppressed    = expvar.NewInt("duplicate_suppressed_count")
	WelcomeSentCount       = expvar.NewInt("welcome_sent_count")

	// Prometheus metrics with labels
	CommandTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clem_command_total",
			Help: "Total number of slash commands invoked by command name",
		},
		[]string{"command"},
	)

	CommandErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clem_command_errors",
			Help: "Total number of slash command errors by command name",
		},
		[]string{"command"},
	)

	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clem_command_duration_seconds",
			Help:    "Duration of slash command execution in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	KarmaApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clem_karma_applied_total",
			Help: "Total number of karma deltas applied by direction",
		},
		[]string{"direction"},
	)

	LLMCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clem_llm_call_duration_seconds",
			Help:    "Duration of LLM generation calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"purpose"},
	)
)

type Server struct {
	*http.Server
}

// SetupServer builds the metrics/health HTTP server. pprof is registered by
// importing the net/http/pprof package.
func SetupServer(addr string) *Server {
	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// reset expvar cache
	DiscordMessageReceived.Set(0)
	DiscordMessageSent.Set(0)
	MessageStored.Set(0)
	KarmaEventCount.Set(0)
	EmptyLLMResponse.Set(0)
	SuccessfulLLMGen.Set(0)
	FailedLLMGen.Set(0)
	SummarySuccessCount.Set(0)
	SummaryFailCount.Set(0)
	DuplicateSuppressed.Set(0)
	WelcomeSentCount.Set(0)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewExpvarCollector(
			map[string]*prometheus.Desc{
				"discord_message_received":    prometheus.NewDesc("discord_message_received", "number of times discord delivered a message", nil, nil),
				"discord_message_sent":        prometheus.NewDesc("discord_message_sent", "number of times clem sent a message", nil, nil),
				"message_stored":              prometheus.NewDesc("message_stored", "number of messages written to chat history", nil, nil),
				"karma_event_count":           prometheus.NewDesc("karma_event_count", "number of messages carrying karma changes", nil, nil),
				"empty_llm_response_count":    prometheus.NewDesc("empty_llm_response_count", "number of times the llm responded with an empty string", nil, nil),
				"successful_llm_gen_count":    prometheus.NewDesc("successful_llm_gen_count", "number of times the llm generated a valid response", nil, nil),
				"failed_llm_gen_count":        prometheus.NewDesc("failed_llm_gen_count", "number of errors during llm generation", nil, nil),
				"summary_success_count":       prometheus.NewDesc("summary_success_count", "number of successful video/web summaries", nil, nil),
				"summary_fail_count":          prometheus.NewDesc("summary_fail_count", "number of failed video/web summaries", nil, nil),
				"duplicate_suppressed_count":  prometheus.NewDesc("duplicate_suppressed_count", "number of responses suppressed as repeats", nil, nil),
				"welcome_sent_count":          prometheus.NewDesc("welcome_sent_count", "number of welcome messages sent", nil, nil),
			},
		),
		CommandTotal,
		CommandErrors,
		CommandDuration,
		KarmaApplied,
		LLMCallDuration,
	)

	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	http.HandleFunc("/healthz", healthzHandler)
	return &Server{server}
}

// healthzHandler returns a simple health check response
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) Run() {
	_ = s.ListenAndServe()
}
