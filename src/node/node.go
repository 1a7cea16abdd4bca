// Package node assembles a running mimble server from a resolved
// configuration: chain store, peer seeding, and the HTTP API.
package node

import (
	"github.com/mimblenetworks/mimble/src/api"
	"github.com/mimblenetworks/mimble/src/chain"
	"github.com/mimblenetworks/mimble/src/config"
	"github.com/sirupsen/logrus"
)

// Server is the embedded mimble node. It owns the chain store and the HTTP
// API server, and stands in front of the p2p and consensus collaborators.
type Server struct {
	config *config.ServerConfig
	store  chain.ChainStore
	api    *api.Server
	logger *logrus.Entry
}

// NewServer ...
func NewServer(cfg *config.ServerConfig) *Server {
	return &Server{
		config: cfg,
		logger: cfg.Logger(),
	}
}

func (s *Server) initStore() error {
	s.logger.WithField("path", s.config.ChainDir()).Debug("Opening chain database")

	store, err := chain.NewBadgerStore(s.config.ChainDir())
	if err != nil {
		return err
	}

	s.store = store

	return nil
}

func (s *Server) initSeeding() error {
	switch s.config.Seeding.Type {
	case config.List:
		s.logger.WithField("seeds", s.config.Seeding.Peers).Info("Seeding from explicit peer list")
	default:
		s.logger.Info("Seeding from web-hosted peer list")
	}
	return nil
}

func (s *Server) initAPI() error {
	apiServer, err := api.StartChainAPIs(s.config.APIAddr, s.store, s.logger)
	if err != nil {
		return err
	}

	s.api = apiServer

	return nil
}

// Start applies the resolved configuration and brings the node up: chain
// store, seeding, then the HTTP API. It returns once the API accept loop is
// running; it does not block. There is no supervision at this layer: a
// fatal error in the embedded node terminates the process.
func (s *Server) Start() error {
	s.logger.WithFields(logrus.Fields{
		"port":        s.config.P2P.Port,
		"seeding":     s.config.Seeding.String(),
		"cuckoo_size": s.config.CuckooSize,
	}).Info("Starting mimble server")

	if err := s.initStore(); err != nil {
		return err
	}

	if err := s.initSeeding(); err != nil {
		return err
	}

	if err := s.initAPI(); err != nil {
		return err
	}

	if s.config.Mining.EnableMining {
		s.logger.Warn("Mining requested but no miner is wired in this build")
	}

	return nil
}

// Store exposes the chain store, mainly so tests can seed state.
func (s *Server) Store() chain.ChainStore {
	return s.store
}

// APIAddr returns the address the HTTP API is bound to.
func (s *Server) APIAddr() string {
	if s.api == nil {
		return ""
	}
	return s.api.Addr()
}

// Shutdown closes the chain store. The API server keeps running until the
// process exits.
func (s *Server) Shutdown() error {
	s.logger.Debug("Shutting down mimble server")

	if s.store != nil {
		return s.store.Close()
	}

	return nil
}
