package config

// DefaultVars are the values other settings are derived from. They can be
// overridden on a config file or with BRIDGELEDGER_<Var> env vars
const DefaultVars = `
PathRWData = "/tmp/bridgeledger"
ETHAppContract = "0x0000000000000000000000000000000000000000"
ERC20AppContract = "0x0000000000000000000000000000000000000000"
`

// DefaultValues is the default configuration
const DefaultValues = `
[Log]
Environment = "development" # "production" or "development"
Level = "info"
Outputs = ["stderr"]

[RPC]
  # Host defines the network adapter that will be used to serve the HTTP requests
  Host = "0.0.0.0"
  # Port defines the port to serve the endpoints via HTTP
  Port = 5576
  # ReadTimeout is the HTTP server read timeout
  # check net/http.server.ReadTimeout and net/http.server.ReadHeaderTimeout
  ReadTimeout = "2s"
  # WriteTimeout is the HTTP server write timeout
  # check net/http.server.WriteTimeout
  WriteTimeout = "2s"
  # MaxRequestsPerIPAndSecond defines how much requests a single IP can
  # send within a single second
  MaxRequestsPerIPAndSecond = 10

[Metrics]
  Enabled = true
  Host = "0.0.0.0"
  Port = 9091
  ReadHeaderTimeout = "2s"

[State]
  # "memory" keeps the ledger in process, "sqlite" persists it on DBPath
  Engine = "sqlite"
  DBPath = "{{PathRWData}}/state.sqlite"

[Verifier]
  SignerSetPath = "{{PathRWData}}/signers.yaml"
  # 0 uses a two thirds quorum of the signer set
  Threshold = 0

[ETHApp]
  ContractAddress = "{{ETHAppContract}}"

[ERC20App]
  ContractAddress = "{{ERC20AppContract}}"
`
