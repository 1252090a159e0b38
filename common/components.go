package common

const (
	// RPC name to identify the rpc component (bridge namespace)
	RPC = "rpc"
	// METRICS name to identify the prometheus metrics component
	METRICS = "metrics"
	// PIPELINE name used by the message pipeline logger, always running
	PIPELINE = "pipeline"
	// LEDGER name used by the ledger logger
	LEDGER = "ledger"
	// STATE name used by the state storage logger
	STATE = "state"
)
