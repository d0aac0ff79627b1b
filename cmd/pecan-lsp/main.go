// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"pecan/internal/config"
	"pecan/internal/lsp"
)

const lsName = "pecan"

var version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "config file (default: ./pecan.toml, or $PECAN_CONFIG)")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "pecan-lsp:", err)
		os.Exit(1)
	}

	// stdout carries the protocol; the simple backend logs to stderr unless a file is set.
	var logFile *string
	if cfg.LSP.LogFile != "" {
		logFile = &cfg.LSP.LogFile
	}
	commonlog.Configure(cfg.LSP.Verbosity, logFile)
	log := commonlog.GetLogger("pecan.lsp.main")

	pecanHandler := lsp.NewPecanHandler()

	handler := protocol.Handler{
		Initialize:                     pecanHandler.Initialize,
		Initialized:                    pecanHandler.Initialized,
		Shutdown:                       pecanHandler.Shutdown,
		SetTrace:                       pecanHandler.SetTrace,
		TextDocumentDidOpen:            pecanHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           pecanHandler.TextDocumentDidClose,
		TextDocumentDidChange:          pecanHandler.TextDocumentDidChange,
		TextDocumentCompletion:         pecanHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: pecanHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s language server v%s", lsName, version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
