package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/npillmayer/manifest/blueprint"
	"github.com/npillmayer/manifest/dom"
	"github.com/npillmayer/manifest/eventbus"
	"github.com/npillmayer/manifest/eventbus/redisforward"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <blueprint.yaml>",
	Short: "Serve a blueprint over HTTP",
	Long: `Builds the node tree of a blueprint and serves it over HTTP.
Classes of nodes may be toggled with POST /nodes/{selector}/classes/{class};
every toggle is published as event "toggled", forwarded to Redis if --redis is set.
Counters are exported at /metrics.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis")
		bp, err := blueprint.Load(args[0])
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		bus := eventbus.New()
		if redisAddr != "" {
			fwd := redisforward.New(ctx, redisAddr, "", 0)
			defer fwd.Close()
			bus = eventbus.New(eventbus.WithForwarder(fwd))
		}
		v, err := build(bp, []dom.Option{dom.WithEventBus(bus)})
		if err != nil {
			return err
		}
		srv := &http.Server{
			Addr:              addr,
			Handler:           newHandler(v),
			ReadHeaderTimeout: 5 * time.Second,
		}
		serverErrors := make(chan error, 1)
		go func() {
			fmt.Fprintf(cmd.OutOrStdout(), "serving %s on %s\n", args[0], addr)
			serverErrors <- srv.ListenAndServe()
		}()
		select {
		case err := <-serverErrors:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", "", "Redis address to forward events to")
}

// handler serves a view. Documents are confined to one goroutine at a time,
// hence all access goes through mu.
type handler struct {
	mu      sync.Mutex
	v       *view
	toggles *prometheus.CounterVec
}

func newHandler(v *view) http.Handler {
	h := &handler{
		v: v,
		toggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manifest_class_toggles_total",
				Help: "Total number of class toggles",
			},
			[]string{"class"},
		),
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(h.toggles)
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/", h.page("html", "text/html; charset=utf-8"))
	r.Get("/tree", h.page("tree", "text/plain; charset=utf-8"))
	r.Get("/dot", h.page("dot", "text/vnd.graphviz"))
	r.Post("/nodes/{selector}/classes/{class}", h.toggleClass)
	return r
}

func (h *handler) page(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		defer h.mu.Unlock()
		w.Header().Set("Content-Type", contentType)
		if err := h.v.write(w, format); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func (h *handler) toggleClass(w http.ResponseWriter, r *http.Request) {
	selector, class := chi.URLParam(r, "selector"), chi.URLParam(r, "class")
	h.mu.Lock()
	defer h.mu.Unlock()
	n, ok := h.v.root.Select(selector, true)
	if !ok && h.v.root.Selector() == selector {
		n, ok = h.v.root, true
	}
	if !ok {
		http.Error(w, fmt.Sprintf("no node %q", selector), http.StatusNotFound)
		return
	}
	n.ToggleClass(class)
	h.toggles.WithLabelValues(class).Inc()
	payload := map[string]any{"selector": selector, "class": class, "active": n.HasClass(class)}
	if err := h.v.doc.Bus().Publish("toggled", payload, true); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
