/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Command ncdc is the client entrypoint: connects to one or more hubs,
// shares configured local directories and serves/accepts file transfers.
package main

import (
	"context"
	"encoding/base32"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/nabbar/ncdc/internal/cc"
	"github.com/nabbar/ncdc/internal/config"
	"github.com/nabbar/ncdc/internal/expect"
	"github.com/nabbar/ncdc/internal/hub"
	"github.com/nabbar/ncdc/internal/listener"
	"github.com/nabbar/ncdc/internal/nclog"
	"github.com/nabbar/ncdc/internal/netconn"
	"github.com/nabbar/ncdc/internal/protocol/adc"
	"github.com/nabbar/ncdc/internal/protocol/nmdc"
	"github.com/nabbar/ncdc/internal/queue"
	"github.com/nabbar/ncdc/internal/rate"
	"github.com/nabbar/ncdc/internal/sched"
	"github.com/nabbar/ncdc/internal/share"
	"github.com/nabbar/ncdc/internal/tlscert"
	"github.com/nabbar/ncdc/internal/tth"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:   "ncdc",
		Short: "A Direct Connect peer-to-peer file sharing client",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")

	root.AddCommand(newRunCmd(), newHashCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the client version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("ncdc " + version)
		},
	}
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <file>",
		Short: "compute the Tiger Tree Hash of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return err
			}

			root, _, err := tth.HashReader(f, info.Size())
			if err != nil {
				return err
			}
			enc := base32.StdEncoding.WithPadding(base32.NoPadding)
			fmt.Println(enc.EncodeToString(root[:]))
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "connect to configured hubs and serve shared files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
}

func loadConfig() (*config.Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("ncdc")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ncdc")
	}
	v.SetEnvPrefix("NCDC")
	v.AutomaticEnv()
	_ = v.ReadInConfig() // absent config file falls back to Default()
	return config.Load(v)
}

func run(parent context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := nclog.SetLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}
	log := nclog.New(nclog.Fields{"component": "ncdc"})

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	reg := prometheus.NewRegistry()
	global := rate.NewGlobal(reg)
	expectTable := expect.New(log)

	hashResults := make(chan share.Result, 16)
	hasher := share.NewHasher(log, 64, hashResults)
	shareIdx := share.New(log, hasher)
	go func() {
		for res := range hashResults {
			if res.Error != nil {
				log.Warn("hash job failed", nclog.Fields{"error": res.Error.Error()})
				continue
			}
			shareIdx.SetTTH(res.Node, res.Root, res.Blob)
		}
	}()
	for alias, path := range cfg.ShareRoots {
		if err := shareIdx.AddSharedRoot(alias, path); err != nil {
			log.Warn("failed to add share root", nclog.Fields{"alias": alias, "path": path, "error": err.Error()})
		}
	}

	dq := queue.New(log)
	if cfg.ExcludeRegex != "" {
		re, err := regexp.Compile(cfg.ExcludeRegex)
		if err != nil {
			return fmt.Errorf("compile exclude_regex: %w", err)
		}
		dq.ExcludeRegex = re
	}

	var certStore *tlscert.Store
	if cfg.ActiveMode {
		certStore = tlscert.New()
		if err := certStore.GenerateSelfSigned(cfg.Nickname); err != nil {
			return fmt.Errorf("generate tls cert: %w", err)
		}
	}

	var ln *listener.Listener
	if cfg.ActiveMode {
		ln = listener.New(log)
		if ok := ln.Start(cfg.ListenIP, cfg.ListenPort, certStore.First()); !ok {
			log.Warn("active mode listener failed, continuing in passive mode", nclog.Fields{})
			ln = nil
		}
	}

	hubs := make([]*hub.Hub, 0, len(cfg.Hubs))
	var hubID uint64
	for _, hc := range cfg.Hubs {
		hubID++
		dialect := hub.DialectLegacy
		if hc.Dialect == "modern" {
			dialect = hub.DialectModern
		}
		h := hub.New(hubID, hc.Name, dialect, log.With(nclog.Fields{"hub": hc.Name}), expectTable)
		h.OwnNick = cfg.Nickname
		h.Password = hc.Password
		hubs = append(hubs, h)
	}

	slots := cc.NewSlotPolicy(cfg.Slots, cfg.MiniSlots)
	c := &core{
		cfg:    cfg,
		log:    log,
		global: global,
		share:  shareIdx,
		dq:     dq,
		slots:  slots,
		ln:     ln,
		hubs:   hubs,
		dl:     newDownloadManager(),
	}

	for _, h := range hubs {
		hc := findHubConfig(cfg, h.Name)
		go connectAndServeHub(ctx, h, hc, cfg, global, log, c)
	}

	if ln != nil {
		ln.Serve(c.acceptInbound, c.udpCallback)
	}

	endpointSource := func() []*netconn.Endpoint {
		out := make([]*netconn.Endpoint, 0, len(hubs))
		for _, h := range hubs {
			if h.Net() != nil {
				out = append(out, h.Net())
			}
		}
		return out
	}
	hubSource := func() []*hub.Hub { return hubs }
	reconnect := func(h *hub.Hub) {
		hc := findHubConfig(cfg, h.Name)
		go connectAndServeHub(ctx, h, hc, cfg, global, log, c)
	}
	rebroadcast := func(h *hub.Hub) {
		if h.ShouldBroadcast(cfg.Description, "", cfg.Email, cfg.Slots, shareIdx.TotalSize(), cfg.ListenIP) {
			frame := h.BuildMyINFO(cfg.Description, "", cfg.Email, cfg.Slots, shareIdx.TotalSize())
			if h.Dialect == hub.DialectLegacy && h.Net() != nil {
				h.Net().SendMessage([]byte(frame))
			}
		}
	}

	scheduler := sched.New(log, global, expectTable, shareIdx, hubSource, endpointSource, reconnect, rebroadcast,
		c.tickDownloads, cfg.ShareRefreshInterval.Time(), int64(cfg.WorkerPoolSize))

	progress := mpb.NewWithContext(ctx)
	bar := progress.AddBar(100,
		mpb.PrependDecorators(decor.Name("traffic")),
		mpb.AppendDecorators(decor.AverageSpeed(decor.SizeB1024(0), "% .2f")))
	go reportTraffic(ctx, global, bar)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- scheduler.Run(ctx) }()

	select {
	case <-sigCh:
		log.Info("shutdown signal received", nclog.Fields{})
		cancel()
	case err := <-errCh:
		cancel()
		return err
	}

	if ln != nil {
		ln.Stop()
	}
	return nil
}

func reportTraffic(ctx context.Context, g *rate.Global, bar *mpb.Bar) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			bar.SetCurrent(int64(g.In.Rate() % 100))
		}
	}
}

func findHubConfig(cfg *config.Config, name string) config.HubConfig {
	for _, hc := range cfg.Hubs {
		if hc.Name == name {
			return hc
		}
	}
	return config.HubConfig{Name: name}
}

// connectAndServeHub dials one configured hub and runs its receive loop
// until the connection drops or ctx is cancelled.
func connectAndServeHub(ctx context.Context, h *hub.Hub, hc config.HubConfig, cfg *config.Config, global *rate.Global, log nclog.Logger, c *core) {
	in := rate.New(nil, nil)
	out := rate.New(nil, nil)

	if err := h.Connect(hc.Addr, hc.TLS, nil, true, in, out, global); err != nil {
		log.Warn("hub connect failed", nclog.Fields{"hub": hc.Name, "error": err.Error()})
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg, rerr := h.Net().RecvMessage()
		if rerr != nil {
			h.Disconnect(false)
			return
		}

		if h.Dialect == hub.DialectLegacy {
			replies, ev := h.HandleLegacy(nmdc.Unescape(string(msg)), cfg.Nickname, hc.Password, nil)
			for _, r := range replies {
				h.Net().SendMessage([]byte(r))
			}
			c.handleLegacyEvent(h, ev)
		} else {
			parsed, perr := adc.ParseHub(string(msg))
			if perr != nil {
				continue
			}
			replies, ev := h.HandleModern(parsed, cfg.Nickname)
			for _, r := range replies {
				h.Net().SendMessage([]byte(adc.EncodeHub(r)))
			}
			if c.handleModernEvent(h, ev) {
				h.Disconnect(false)
				return
			}
		}
	}
}
