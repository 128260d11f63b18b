package transcriber

import (
	"net/http"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/nguyentantai21042004/speaker-scribe/internal/logger"
)

type implAssemblyAI struct {
	client       *aai.Client
	pollInterval time.Duration
	logger       logger.Logger
}

// New creates an AssemblyAI-backed Transcriber. httpClient is shared by every
// job and must be safe for concurrent use; nil uses http.DefaultClient.
func New(baseURL, apiKey string, pollInterval time.Duration, httpClient *http.Client, log logger.Logger) Transcriber {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	return &implAssemblyAI{
		client:       NewClient(baseURL, apiKey, httpClient),
		pollInterval: pollInterval,
		logger:       log,
	}
}

// NewClient builds the SDK client shared by transcription and LeMUR.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *aai.Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	opts := []aai.ClientOption{
		aai.WithAPIKey(apiKey),
		aai.WithHTTPClient(httpClient),
	}
	if baseURL != "" {
		opts = append(opts, aai.WithBaseURL(strings.TrimSuffix(baseURL, "/")))
	}
	return aai.NewClientWithOptions(opts...)
}
