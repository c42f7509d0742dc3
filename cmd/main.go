package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"reflect"
	"sync"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/events"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/aukilabs/ringsmapeditor/featureflag"
	"github.com/aukilabs/ringsmapeditor/host"
	editorhttp "github.com/aukilabs/ringsmapeditor/http"
	"github.com/aukilabs/ringsmapeditor/level"
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/aukilabs/ringsmapeditor/plugin"
	"github.com/aukilabs/ringsmapeditor/replay"
	"github.com/aukilabs/ringsmapeditor/simhost"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
)

var (
	// The editor version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "ringsmapeditor_info",
		Help:        "Rings map editor information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	LevelFile      string        `cli:""        env:"RINGSMAPEDITOR_LEVEL_FILE"       help:"Level file to validate and race."`
	MeshCatalogDir string        `cli:""        env:"RINGSMAPEDITOR_MESH_CATALOG_DIR" help:"Directory of the mesh catalog files."`
	DataDir        string        `cli:""        env:"RINGSMAPEDITOR_DATA_DIR"         help:"Directory where levels are saved."`
	TrackFile      string        `cli:""        env:"RINGSMAPEDITOR_TRACK_FILE"       help:"Car track to replay on the level, one JSON sample per line."`
	TickDuration   time.Duration `cli:",hidden" env:"RINGSMAPEDITOR_TICK_DURATION"    help:"Game time between two track samples."`
	AdminAddr      string        `cli:""        env:"RINGSMAPEDITOR_ADMIN_ADDR"       help:"Admin listening address. The binary keeps serving after the replay when set."`
	LogLevel       string        `cli:""        env:"RINGSMAPEDITOR_LOG_LEVEL"        help:"Log level (debug|info|warning|error)."`
	LogIndent      bool          `cli:""        env:"RINGSMAPEDITOR_LOG_INDENT"       help:"Indent logs."`
	Events         eventsConfig  `cli:",hidden" env:"-"                               help:"Event pusher configuration."`
	FeatureFlags   []string      `cli:",hidden" env:"RINGSMAPEDITOR_FEATURE_FLAGS"    help:"Comma separated feature flags"`
	Version        bool          `cli:""        env:"-"                               help:"Show version."`
	Help           bool          `cli:""        env:"-"                               help:"Show help."`
}

type eventsConfig struct {
	Endpoint      string        `cli:",hidden" env:"RINGSMAPEDITOR_EVENTS_ENDPOINT"       help:"Endpoint to where events are pushed."`
	FlushInterval time.Duration `cli:",hidden" env:"RINGSMAPEDITOR_EVENTS_FLUSH_INTERVAL" help:"The duration between each event flush."`
	BatchSize     int           `cli:",hidden" env:"RINGSMAPEDITOR_EVENTS_BATCH_SIZE"     help:"The maximum number of events sent at once."`
	QueueSize     int           `cli:",hidden" env:"RINGSMAPEDITOR_EVENTS_QUEUE_SIZE"     help:"The size of the queue where events are stored."`
}

func main() {
	conf := config{
		DataDir:      "levels",
		TickDuration: time.Second / 60,
		LogLevel:     logs.InfoLevel.String(),
		Events: eventsConfig{
			FlushInterval: events.DefaultFlushInterval,
			BatchSize:     events.DefaultBatchSize,
			QueueSize:     events.DefaultQueueSize,
		},
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Validates a rings level and replays a car track on it.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	if conf.Events.Endpoint != "" {
		eventsPusher := events.Pusher{
			Endpoint:      conf.Events.Endpoint,
			FlushInterval: conf.Events.FlushInterval,
			BatchSize:     conf.Events.BatchSize,
			QueueSize:     conf.Events.QueueSize,
			Transport:     metrics.HTTPTransport(http.DefaultTransport),
		}
		go eventsPusher.Start()
		defer eventsPusher.Close()

		eventsLogger := events.Logger{
			Pusher:           &eventsPusher,
			SDKType:          "ringsmapeditor",
			SDKVersionFamily: version,
		}
		logs.SetLogger(eventsLogger.Log)
	}

	var meshes []models.MeshInfos
	if conf.MeshCatalogDir != "" {
		var err error
		if meshes, err = level.LoadMeshCatalog(conf.MeshCatalogDir); err != nil {
			logs.Fatal(errors.New("loading mesh catalog failed").Wrap(err))
		}
	}

	var mu sync.Mutex
	sim := simhost.New()
	clock := replay.NewClock(time.Now())
	p := plugin.New(sim, plugin.Options{
		DataDir: conf.DataDir,
		Meshes:  meshes,
		Flags:   featureflag.New(conf.FeatureFlags),
		Now:     clock.Now,
	})
	p.Load()
	defer p.Unload()

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("level_file", conf.LevelFile).
		WithTag("track_file", conf.TrackFile).
		Info("starting rings map editor")

	if conf.LevelFile != "" {
		if err := level.LoadFile(conf.LevelFile, p.Objects); err != nil {
			logs.Fatal(errors.New("loading level failed").Wrap(err))
		}

		issues := level.Validate(p.Objects.Objects())
		for _, issue := range issues {
			logs.Warn(issue)
		}
		logs.WithTag("level_id", p.Objects.LevelUUID).
			WithTag("issues", len(issues)).
			Info("level validated")
	}

	sim.Fire(host.EventGameCreated, nil)
	sim.Fire(host.EventGameFirstTick, nil)

	var admin *http.Server
	if conf.AdminAddr != "" {
		admin = &http.Server{
			Addr:    conf.AdminAddr,
			Handler: metrics.HTTPHandler(newAdminMux(&mu, p), editorhttp.MetricsPathFormatter),
		}
	}

	var wg sync.WaitGroup
	if admin != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			editorhttp.ListenAndServe(ctx, admin)
		}()
	}

	if conf.TrackFile != "" {
		if err := runTrack(ctx, conf, &mu, p, sim, clock); err != nil {
			logs.Error(errors.New("replaying track failed").Wrap(err))
		}
	}

	if admin == nil {
		return
	}
	wg.Wait()
}

func runTrack(ctx context.Context, conf config, mu *sync.Mutex, p *plugin.Plugin, sim *simhost.Host, clock *replay.Clock) error {
	samples, err := replay.ReadTrackFile(conf.TrackFile)
	if err != nil {
		return err
	}

	res, err := replay.Run(ctx, p, sim, samples, replay.Options{
		TickDuration: conf.TickDuration,
		Clock:        clock,
		Lock:         mu,
	})
	if err != nil {
		return err
	}

	if !res.Finished {
		logs.Warn(errors.New("track did not reach an end checkpoint").
			WithTag("run_id", res.RunID).
			WithTag("checkpoint_id", res.Checkpoint))
	}
	return nil
}

func newAdminMux(mu *sync.Mutex, p *plugin.Plugin) *http.ServeMux {
	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", editorhttp.HandleHealthCheck)
	admin.Handle("/version", editorhttp.HandleWithCORS(editorhttp.HandleVersion(version)))
	admin.Handle("/level", editorhttp.HandleWithCORS(editorhttp.HandleLevel(mu, p.Objects)))
	admin.Handle("/race", editorhttp.HandleWithCORS(editorhttp.HandleRace(mu, p)))
	admin.HandleFunc("/debug/pprof/", pprof.Index)
	admin.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	admin.HandleFunc("/debug/pprof/profile", pprof.Profile)
	admin.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	admin.HandleFunc("/debug/pprof/trace", pprof.Trace)
	admin.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	admin.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	return &admin
}

func validateConfig(conf config) error {
	if conf.TrackFile != "" && conf.LevelFile == "" {
		return errors.New("a track can only be replayed on a level file")
	}

	if conf.TickDuration <= 0 {
		return errors.New("tick duration must be positive").
			WithTag("tick_duration", conf.TickDuration.String())
	}

	if conf.LevelFile == "" && conf.AdminAddr == "" {
		return errors.New("nothing to do: set a level file or an admin address")
	}

	return nil
}
