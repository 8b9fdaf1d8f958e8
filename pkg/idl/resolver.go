package idl

import (
	"context"
	"crypto/ed25519"
	"io"
	"net/http"
	"os"
	"time"
	"unicode/utf8"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/periscope/pkg/metrics"
	"github.com/code-payments/periscope/pkg/solana"
)

const metricsStructName = "idl.resolver"

// Source designates where an idl should be resolved from. It is a closed
// set: on-chain account, local file, or remote url.
type Source interface {
	isSource()
}

// OnChainSource resolves the idl account derived from the program id.
type OnChainSource struct {
	Program ed25519.PublicKey
}

// FileSource reads an idl document from the local filesystem.
type FileSource struct {
	Path string
}

// UrlSource fetches an idl document over http(s). The url must point at the
// raw document; callers are responsible for any rewriting beforehand.
type UrlSource struct {
	Url string
}

func (OnChainSource) isSource() {}
func (FileSource) isSource()    {}
func (UrlSource) isSource()     {}

// Resolver loads idl documents from any Source and normalizes them into the
// canonical form. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	log        *logrus.Entry
	solana     solana.Client
	httpClient *http.Client
}

// NewResolver returns a Resolver using the provided rpc client and a default
// http client for url sources.
func NewResolver(solanaClient solana.Client) *Resolver {
	return NewResolverWithHTTPClient(solanaClient, &http.Client{
		Timeout: 30 * time.Second,
	})
}

// NewResolverWithHTTPClient returns a Resolver with an injected http client.
func NewResolverWithHTTPClient(solanaClient solana.Client, httpClient *http.Client) *Resolver {
	return &Resolver{
		log:        logrus.StandardLogger().WithField("type", "idl/resolver"),
		solana:     solanaClient,
		httpClient: httpClient,
	}
}

// Resolve performs a single blocking resolution of the idl designated by
// source. Exactly one acquisition is attempted; retry policy, if any,
// belongs to the injected clients or the caller. Errors carry the stage and
// acquisition path that produced them, and a failed resolution never yields
// a partial idl.
func (r *Resolver) Resolve(ctx context.Context, source Source) (*Idl, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Resolve")
	defer tracer.End()

	var out *Idl
	var err error

	switch s := source.(type) {
	case OnChainSource:
		out, err = r.resolveOnChain(s)
	case FileSource:
		out, err = r.resolveFile(s)
	case UrlSource:
		out, err = r.resolveUrl(ctx, s)
	default:
		err = errors.Errorf("unsupported idl source: %T", source)
	}

	if err != nil {
		tracer.OnError(err)
		return nil, err
	}

	return out, nil
}

func (r *Resolver) resolveOnChain(source OnChainSource) (*Idl, error) {
	log := r.log.WithField("method", "resolveOnChain")

	address, err := AccountAddress(source.Program)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive idl account address")
	}

	log = log.WithFields(logrus.Fields{
		"program":     base58.Encode(source.Program),
		"idl_account": base58.Encode(address),
	})
	log.Debug("fetching idl account")

	info, err := r.solana.GetAccountInfo(address, solana.CommitmentFinalized)
	if err == solana.ErrNoAccountInfo {
		return nil, errors.Wrapf(ErrIdlNotFound, "program %s", base58.Encode(source.Program))
	} else if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "failed to fetch idl account %s: %v", base58.Encode(address), err)
	}

	envelope, err := ParseEnvelope(info.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse idl account")
	}

	// On-chain idl data is always compressed, so a decompression failure
	// here is corruption, never a plain document.
	jsonBytes, err := Decompress(envelope.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress idl payload")
	}

	if !utf8.Valid(jsonBytes) {
		return nil, errors.Wrap(ErrCorruptPayload, "decompressed payload is not valid utf-8")
	}

	log.WithField("size", len(jsonBytes)).Debug("decompressed idl document")

	return Normalize(jsonBytes)
}

func (r *Resolver) resolveFile(source FileSource) (*Idl, error) {
	data, err := os.ReadFile(source.Path)
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "failed to read idl file %s: %v", source.Path, err)
	}

	jsonBytes, err := decompressOrPlain(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load idl file %s", source.Path)
	}

	return Normalize(jsonBytes)
}

func (r *Resolver) resolveUrl(ctx context.Context, source UrlSource) (*Idl, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.Url, http.NoBody)
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "failed to create request for %s: %v", source.Url, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "failed to fetch idl from %s: %v", source.Url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrSourceUnavailable, "received non-200 status code from %s: %d", source.Url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "failed to read response from %s: %v", source.Url, err)
	}

	jsonBytes, err := decompressOrPlain(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load idl from %s", source.Url)
	}

	return Normalize(jsonBytes)
}

// decompressOrPlain inflates documents that arrive compressed and passes
// plain ones through. Only ErrCorruptPayload signals an uncompressed
// document; a payload over the size limit is an error outright.
func decompressOrPlain(data []byte) ([]byte, error) {
	out, err := Decompress(data)
	if err == nil {
		return out, nil
	}
	if errors.Is(err, ErrCorruptPayload) {
		return data, nil
	}
	return nil, err
}
