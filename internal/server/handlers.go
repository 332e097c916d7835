package server

import (
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"github.com/codebox/generative-city-map/internal/config"
	"github.com/codebox/generative-city-map/internal/experiment"
	"github.com/codebox/generative-city-map/internal/export"
	"github.com/codebox/generative-city-map/internal/render"
	"github.com/codebox/generative-city-map/internal/storage"
)

const indexHTML = `<!doctype html>
<html>
<head><title>citymap</title></head>
<body style="font-family: monospace; max-width: 40em; margin: 3em auto;">
<h1>citymap</h1>
<p>Deterministic generative street maps. Same parameters, same city.</p>
<ul>
<li><a href="/map.svg">/map.svg</a>: vector preview</li>
<li><a href="/map.png?style=ink">/map.png</a>: raster preview</li>
<li><a href="/runs">/runs</a>: stored runs</li>
</ul>
<p>Parameters: seed, w, h, seeds, branch, expiry, viewport (rect|disc),
style (ink|pencil|blueprint, PNG only), scale (PNG only).</p>
<p>Example: <a href="/map.png?seed=7&seeds=9&branch=0.15&style=blueprint">
/map.png?seed=7&amp;seeds=9&amp;branch=0.15&amp;style=blueprint</a></p>
</body>
</html>
`

// mapRequest is one preview request: a full run config plus raster options.
type mapRequest struct {
	cfg   experiment.Config
	style string
	scale float64
}

// query collects parse errors so handlers check once at the end.
type query struct {
	vals url.Values
	err  error
}

func (p *query) float(key string, dst *float64, lo, hi float64) {
	if p.err != nil {
		return
	}
	raw := p.vals.Get(key)
	if raw == "" {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = fmt.Errorf("bad %s: %q", key, raw)
		return
	}
	if v < lo || v > hi {
		p.err = fmt.Errorf("%s out of range [%g, %g]", key, lo, hi)
		return
	}
	*dst = v
}

func (p *query) int(key string, dst *int, lo, hi int) {
	if p.err != nil {
		return
	}
	raw := p.vals.Get(key)
	if raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = fmt.Errorf("bad %s: %q", key, raw)
		return
	}
	if v < lo || v > hi {
		p.err = fmt.Errorf("%s out of range [%d, %d]", key, lo, hi)
		return
	}
	*dst = v
}

func (p *query) int64(key string, dst *int64) {
	if p.err != nil {
		return
	}
	raw := p.vals.Get(key)
	if raw == "" {
		return
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.err = fmt.Errorf("bad %s: %q", key, raw)
		return
	}
	*dst = v
}

func (p *query) str(key string, dst *string) {
	if p.err != nil {
		return
	}
	if raw := p.vals.Get(key); raw != "" {
		*dst = raw
	}
}

// parseMap fills a request from the query string on top of the server's base
// config. Size and count parameters are clamped so a URL cannot ask for an
// arbitrarily expensive render.
func (s *Server) parseMap(r *http.Request) (mapRequest, error) {
	req := mapRequest{cfg: s.base, style: config.DefaultStyle, scale: 6}
	p := &query{vals: r.URL.Query()}
	p.int64("seed", &req.cfg.Seed)
	p.float("w", &req.cfg.Width, 16, 1024)
	p.float("h", &req.cfg.Height, 16, 1024)
	p.int("seeds", &req.cfg.City.SeedCount, 0, 256)
	p.float("branch", &req.cfg.City.PBifurcation, 0, 1)
	p.float("expiry", &req.cfg.City.ExpiryThreshold, 0, 1)
	p.str("viewport", &req.cfg.Viewport)
	p.str("style", &req.style)
	p.float("scale", &req.scale, 1, 16)
	return req, p.err
}

// grow runs the request's config to rest. Run errors after a live context
// mean a bad parameter (unknown viewport), so callers answer 400.
func grow(w http.ResponseWriter, r *http.Request, cfg experiment.Config) (*experiment.Result, bool) {
	result, err := experiment.New(cfg).Run(r.Context())
	if err != nil {
		if r.Context().Err() != nil {
			return nil, false
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return result, true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseMap(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, ok := grow(w, r, req.cfg)
	if !ok {
		return
	}
	svg := export.ForestSVG(result.Model, export.DefaultSVGOptions(req.cfg.Width, req.cfg.Height))
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(svg))
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseMap(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ren, err := render.New(render.Options{
		Width:  req.cfg.Width,
		Height: req.cfg.Height,
		Scale:  req.scale,
		Style:  req.style,
		Seed:   uint32(req.cfg.Seed),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, ok := grow(w, r, req.cfg)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, ren.Render(result.Model)); err != nil {
		loggerFromContext(r.Context()).Error("png encode failed", "err", err)
	}
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs := []storage.RunMetadata{}
	if s.store != nil {
		list, err := s.store.List()
		if err != nil {
			loggerFromContext(r.Context()).Error("listing runs failed", "err", err)
			http.Error(w, "listing runs failed", http.StatusInternalServerError)
			return
		}
		if list != nil {
			runs = list
		}
	}
	writeJSON(w, runs)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
