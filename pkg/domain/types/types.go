package types

// Version is the application version, overwritten at build time via -ldflags
var Version = "dev"

// ServiceName is reported by the health endpoint and used as the CLI name
const ServiceName = "dxrelay"

// CredentialID identifies the DX API bearer token in the credential store
const CredentialID = "dx-api-token"

// PipelineSource is the constant pipeline_source value sent to DX
const PipelineSource = "jenkins"

// SyncPath is the DX endpoint receiving pipeline runs, relative to the base URL
const SyncPath = "/api/pipelineRuns.sync"
