package main

import (
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/periscope/pkg/idl"
	"github.com/code-payments/periscope/pkg/netutil"
	"github.com/code-payments/periscope/pkg/solana"
)

// idlSource maps the CLI inputs onto a resolver source. With --idl set the
// program id argument is ignored; otherwise it is required and must be a
// base58 32 byte key.
func idlSource(args []string) (idl.Source, error) {
	if idlFlag != "" {
		if strings.HasPrefix(idlFlag, "http://") || strings.HasPrefix(idlFlag, "https://") {
			return idl.UrlSource{Url: netutil.RewriteGitHubBlobUrl(idlFlag)}, nil
		}
		return idl.FileSource{Path: idlFlag}, nil
	}

	if len(args) == 0 {
		return nil, errors.New("a program id is required unless --idl is provided")
	}

	program, err := base58.Decode(args[0])
	if err != nil {
		return nil, errors.Wrapf(err, "invalid program id %s", args[0])
	}

	return idl.OnChainSource{Program: program}, nil
}

func newResolver() *idl.Resolver {
	return idl.NewResolver(solana.New(conf.RpcUrl))
}
