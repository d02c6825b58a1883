// Package moh reads the Ministry of Health duty listing for Attica.
package moh

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hospital_duty_kiosk/internal/domain/document"
	"hospital_duty_kiosk/internal/domain/duty"
	"hospital_duty_kiosk/internal/domain/registry"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

// maxDocumentSize caps a single download.
const maxDocumentSize = 32 << 20

var (
	fdlPattern   = regexp.MustCompile(`fdl=(\d+)`)
	yearPattern  = regexp.MustCompile(`20\d{2}`)
	datePattern  = regexp.MustCompile(`(?:^|\D)(\d{1,2})\s+(\S+)\s+(20\d{2})`)
	monthByToken = monthTokenIndex()
)

// Client lists and downloads duty documents. It implements duty.SourceLister
// and duty.DocumentFetcher.
type Client struct {
	httpClient *http.Client
	listingURL string
	location   *time.Location
	logger     *logrus.Entry
}

func NewClient(listingURL string, timeout time.Duration, loc *time.Location, logger *logrus.Entry) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		listingURL: listingURL,
		location:   loc,
		logger:     logger,
	}
}

// ListSources returns the documents announced on the listing page. Entries
// whose label carries a date before since are dropped; undated entries are kept.
func (c *Client) ListSources(ctx context.Context, since time.Time) ([]duty.Source, error) {
	body, err := c.get(ctx, c.listingURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	sources, err := ParseListing(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse listing: %v", duty.ErrUnreachable, err)
	}

	cutoff := duty.DateOf(since.In(c.location)).In(c.location)
	kept := sources[:0]
	for _, s := range sources {
		if d, ok := LabelDate(s.Label, c.location); ok && d.Before(cutoff) {
			continue
		}
		kept = append(kept, s)
	}
	c.logger.WithFields(logrus.Fields{"listed": len(sources), "kept": len(kept)}).Debug("Listing parsed")
	return kept, nil
}

// Fetch downloads the document with the given fdl id.
func (c *Client) Fetch(ctx context.Context, id string) ([]byte, error) {
	u, err := c.documentURL(id)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	raw, err := io.ReadAll(io.LimitReader(body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read document %s: %v", duty.ErrUnreachable, id, err)
	}
	return raw, nil
}

func (c *Client) documentURL(id string) (string, error) {
	u, err := url.Parse(c.listingURL)
	if err != nil {
		return "", fmt.Errorf("invalid listing url: %w", err)
	}
	q := u.Query()
	q.Set("fdl", id)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", duty.ErrUnreachable, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", duty.ErrNotFound, target)
	case resp.StatusCode >= 300:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %d", duty.ErrUnreachable, target, resp.StatusCode)
	}
	return resp.Body, nil
}

// ParseListing extracts the downloadable duty documents from the listing HTML.
// An anchor qualifies when its href carries an fdl id and its text a year.
func ParseListing(r io.Reader) ([]duty.Source, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var sources []duty.Source
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if s, ok := anchorSource(n); ok {
				sources = append(sources, s)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return sources, nil
}

func anchorSource(n *html.Node) (duty.Source, bool) {
	var href string
	for _, a := range n.Attr {
		if a.Key == "href" {
			href = a.Val
		}
	}
	m := fdlPattern.FindStringSubmatch(href)
	if m == nil {
		return duty.Source{}, false
	}
	label := strings.Join(strings.Fields(nodeText(n)), " ")
	if !yearPattern.MatchString(label) {
		return duty.Source{}, false
	}

	format := document.FormatDOC
	if strings.Contains(strings.ToLower(label), ".pdf") {
		format = document.FormatPDF
	}
	return duty.Source{ID: m[1], Label: label, Format: format}, true
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

// LabelDate reads the "<day> <MONTH> <year>" date out of a listing label.
func LabelDate(label string, loc *time.Location) (time.Time, bool) {
	for _, m := range datePattern.FindAllStringSubmatch(label, -1) {
		month, ok := monthByToken[registry.Fold(m[2])]
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		t := time.Date(year, month, day, 0, 0, 0, 0, loc)
		if t.Day() != day {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}

func monthTokenIndex() map[string]time.Month {
	out := make(map[string]time.Month, 24)
	for _, tok := range registry.MonthTokens() {
		out[registry.Fold(tok.Token)] = tok.Month
	}
	return out
}
