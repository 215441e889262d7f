package httpapi

import (
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/polyfill/internal/engine/bundler"
)

const (
	oneDay  = 60 * 60 * 24
	oneWeek = oneDay * 7
	oneYear = oneDay * 365

	contentTypeJS   = "application/javascript;charset=utf-8"
	contentTypeText = "text/plain;charset=utf-8"

	v1Notice = "API version 1 has been decommissioned - see the body of this response for more information."
	v1Body   = "API version 1 has been decommissioned. Your request is being redirected to v2.  " +
		"The `libVersion` and `gated` query string parameters are no longer supported and if present " +
		"have been removed from your request.\n"
)

var (
	polyfillFile = regexp.MustCompile(`^polyfill(\.\w+)(\.\w+)?$`)
	callbackName = regexp.MustCompile(`^[\w.]+$`)
	v1PathStrip  = regexp.MustCompile(`[^\w/.+:]`)

	cacheForever = "public, max-age=" + strconv.Itoa(oneYear) + ", stale-if-error=" + strconv.Itoa(oneYear+oneWeek)
)

func (s *Server) handlePolyfill(w http.ResponseWriter, r *http.Request) {
	start := s.now()

	m := polyfillFile.FindStringSubmatch(r.PathValue("file"))
	if m == nil {
		http.NotFound(w, r)
		return
	}
	first := strings.ToLower(m[1])
	minify := first == ".min"
	ext := first
	if m[2] != "" {
		ext = strings.ToLower(m[2])
	}
	if ext != ".js" {
		w.Header().Set("Content-Type", contentTypeText)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("/* Type not supported.  Only .js is supported at the moment */"))
		return
	}

	if !s.svc.Ready() {
		http.Error(w, domain.ErrRegistryNotReady.Error(), http.StatusServiceUnavailable)
		return
	}

	req, err := parseRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Minify = minify
	if r.URL.Query().Get("ua") == "" {
		w.Header().Set("Vary", "User-Agent")
	}

	art, err := s.svc.Bundle(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrRegistryNotReady) {
			http.Error(w, domain.ErrRegistryNotReady.Error(), http.StatusServiceUnavailable)
			return
		}
		s.logger.Error(err)
		http.Error(w, "failed to build bundle", http.StatusInternalServerError)
		return
	}

	body := art.Source
	if cb := r.URL.Query().Get("callback"); cb != "" && callbackName.MatchString(cb) {
		body += "\ntypeof " + cb + "==='function' && " + cb + "();"
	}

	etag := `"` + bundler.Digest(body) + `"`
	w.Header().Set("Content-Type", contentTypeJS)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("ETag", etag)

	if s.metrics != nil {
		family, major := art.Identity.MetricsLabels()
		s.metrics.ObserveRequest(family, major, s.now().Sub(start).Seconds())
	}

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	_, _ = w.Write([]byte(body))
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	ua := r.URL.Query().Get("ua")
	if ua == "" {
		http.Error(w, "ua query param required", http.StatusBadRequest)
		return
	}
	w.Header().Set("Cache-Control", cacheForever)
	w.Header().Set("Normalized-User-Agent", url.PathEscape(s.svc.Normalize(ua)))
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleV1(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	keys := make([]string, 0, len(query))
	for key := range query {
		if key != "libVersion" && key != "gated" {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+url.QueryEscape(query.Get(key)))
	}

	location := "/v2/" + v1PathStrip.ReplaceAllString(r.PathValue("rest"), "")
	if len(pairs) > 0 {
		location += "?" + strings.Join(pairs, "&")
	}

	w.Header().Set("Location", location)
	w.Header().Set("Deprecation-Notice", v1Notice)
	w.Header().Set("Content-Type", contentTypeText)
	w.WriteHeader(http.StatusMovedPermanently)
	_, _ = w.Write([]byte(v1Body))
}

// parseRequest maps query parameters onto a pipeline request. The ua
// parameter wins over the User-Agent header.
func parseRequest(r *http.Request) (domain.Request, error) {
	q := r.URL.Query()

	req := domain.Request{
		Capabilities: domain.ParseFeatureList(q.Get("features"), domain.SplitList(q.Get("flags"))...),
		UserAgent:    q.Get("ua"),
		Excludes:     domain.SplitList(q.Get("excludes")),
	}
	if req.UserAgent == "" {
		req.UserAgent = r.Header.Get("User-Agent")
	}
	if raw := q.Get("unknown"); raw != "" {
		policy, err := domain.ParseUnknownPolicy(raw)
		if err != nil {
			return domain.Request{}, err
		}
		req.Unknown = policy
	}
	return req, nil
}
