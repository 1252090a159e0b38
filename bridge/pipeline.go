package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/0xPolygon/bridgeledger/attestation"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/0xPolygon/bridgeledger/state"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrMessageAlreadyProcessed is returned when a message was already applied
var ErrMessageAlreadyProcessed = errors.New("message already processed")

const (
	resultApplied            = "applied"
	resultVerificationFailed = "verification_failed"
	resultUnknownApp         = "unknown_app"
	resultReplayed           = "replayed"
	resultRejected           = "rejected"
)

var messagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bridgeledger_messages_total",
		Help: "Total number of relayed messages handled, by application and result",
	}, []string{"app", "result"})

// Verifier checks the attestation of a raw message and returns its payload
type Verifier interface {
	Verify(raw []byte) ([]byte, error)
}

// Pipeline is the inbound entry point: it verifies a relayed message, routes
// it and applies it exactly once.
type Pipeline struct {
	logger   *log.Logger
	verifier Verifier
	router   *Router
	store    state.Store
}

func NewPipeline(logger *log.Logger, verifier Verifier, router *Router, store state.Store) *Pipeline {
	return &Pipeline{
		logger:   logger,
		verifier: verifier,
		router:   router,
		store:    store,
	}
}

// Handle verifies message, hands its payload to the application registered
// for appID and records it as processed. The application writes and the
// processed mark are committed together, or not at all. It returns the id of
// the message, the digest of its payload.
func (p *Pipeline) Handle(ctx context.Context, appID AppID, message []byte) (common.Hash, error) {
	payload, err := p.verifier.Verify(message)
	if err != nil {
		messagesTotal.WithLabelValues(appID.Hex(), resultVerificationFailed).Inc()
		p.logger.Warnf("rejecting message for app %s: %v", appID.Hex(), err)
		if !errors.Is(err, attestation.ErrVerificationFailure) {
			err = fmt.Errorf("%w: %w", attestation.ErrVerificationFailure, err)
		}
		return common.Hash{}, err
	}
	messageID := attestation.Digest(payload)

	app, err := p.router.Lookup(appID)
	if err != nil {
		messagesTotal.WithLabelValues(appID.Hex(), resultUnknownApp).Inc()
		p.logger.Warnf("rejecting message %s: %v", messageID.Hex(), err)
		return messageID, err
	}

	err = p.store.Update(ctx, func(tx state.Tx) error {
		processed, err := tx.IsProcessed(messageID)
		if err != nil {
			return err
		}
		if processed {
			return fmt.Errorf("%w: %s", ErrMessageAlreadyProcessed, messageID.Hex())
		}
		if err := app.HandleWithTx(tx, payload); err != nil {
			return err
		}
		return tx.MarkProcessed(messageID, appID.Hash())
	})
	switch {
	case err == nil:
		messagesTotal.WithLabelValues(appID.Hex(), resultApplied).Inc()
		p.logger.Infof("message %s applied by %s", messageID.Hex(), app.Name())
		return messageID, nil
	case errors.Is(err, ErrMessageAlreadyProcessed), errors.Is(err, state.ErrAlreadyProcessed):
		messagesTotal.WithLabelValues(appID.Hex(), resultReplayed).Inc()
		p.logger.Warnf("message %s replayed for %s", messageID.Hex(), app.Name())
		if !errors.Is(err, ErrMessageAlreadyProcessed) {
			err = fmt.Errorf("%w: %w", ErrMessageAlreadyProcessed, err)
		}
		return messageID, err
	default:
		messagesTotal.WithLabelValues(appID.Hex(), resultRejected).Inc()
		p.logger.Warnf("message %s rejected by %s: %v", messageID.Hex(), app.Name(), err)
		return messageID, err
	}
}

// IsProcessed reports whether the message with the given id was applied
func (p *Pipeline) IsProcessed(ctx context.Context, messageID common.Hash) (bool, error) {
	var processed bool
	err := p.store.View(ctx, func(r state.Reader) error {
		var err error
		processed, err = r.IsProcessed(messageID)
		return err
	})
	return processed, err
}
