package inspect

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	tls2 "github.com/refraction-networking/utls"

	"github.com/dredding8/malibu-ui-private/models"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// snapshotLimit caps how much markup a single snapshot may carry.
const snapshotLimit = 10 * 1024 * 1024 // 10 MB

// Snapshot is a static markup document under audit. It holds both the raw
// markup (for region scoping and report excerpts) and the parsed document.
type Snapshot struct {
	Source string
	Raw    string
	Doc    *goquery.Document
}

// LoadSnapshot reads a snapshot from a local file path or, when the source
// starts with http:// or https://, fetches it over HTTP with a Chrome TLS
// fingerprint. Malformed markup is not an error at this stage; goquery
// parses leniently and missing landmarks surface as absent later.
func LoadSnapshot(ctx context.Context, source string) (*Snapshot, error) {
	var raw []byte
	var err error

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		raw, err = fetchSnapshot(ctx, source)
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeSnapshot,
			fmt.Sprintf("failed to load snapshot from %s", source), err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeSnapshot,
			"failed to parse snapshot markup", err)
	}

	return &Snapshot{Source: source, Raw: string(raw), Doc: doc}, nil
}

// Scoped returns a parsed document narrowed to the given CSS region
// selector; when the region is absent the full document is returned.
func (s *Snapshot) Scoped(selector string) (*goquery.Document, error) {
	if selector == "" {
		return s.Doc, nil
	}
	scoped, err := Scope(s.Raw, selector)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(scoped))
}

// fetchSnapshot retrieves the URL via plain HTTP with a Chrome TLS
// fingerprint, so staging environments behind bot filters still serve the
// real markup.
func fetchSnapshot(ctx context.Context, targetURL string) ([]byte, error) {
	transport := &http.Transport{
		DialTLSContext: dialTLSChrome,
	}

	client := &http.Client{Transport: transport}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot: build request: %w", err)
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snapshot: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("snapshot: HTTP %d for %s", resp.StatusCode, targetURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, snapshotLimit))
	if err != nil {
		return nil, fmt.Errorf("snapshot: read body: %w", err)
	}

	return body, nil
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint via utls.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{
		ServerName: host,
	}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}
