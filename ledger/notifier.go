package ledger

import (
	"github.com/0xPolygon/bridgeledger/account"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Kind of balance change
type Kind string

const (
	Minted Kind = "minted"
	Burned Kind = "burned"
)

var notificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bridgeledger_ledger_notifications_total",
		Help: "Total number of committed mints and burns",
	}, []string{"kind", "asset"})

// Notification is emitted once per committed mint or burn
type Notification struct {
	Kind    Kind
	Account account.ID
	Asset   common.Address
	Amount  *uint256.Int
}

// Notifier is told about every committed balance change
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to a Notifier
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Notifiers fans a notification out to all of its members
type Notifiers []Notifier

func (ns Notifiers) Notify(n Notification) {
	for _, notifier := range ns {
		notifier.Notify(n)
	}
}

// LogNotifier logs every notification
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(n Notification) {
	l.logger.Infof("%s %s of asset %s for account %s", n.Kind, n.Amount.Dec(), n.Asset.Hex(), n.Account.Hex())
}

// MetricsNotifier counts notifications per kind and asset
type MetricsNotifier struct{}

func (MetricsNotifier) Notify(n Notification) {
	notificationsTotal.WithLabelValues(string(n.Kind), n.Asset.Hex()).Inc()
}
