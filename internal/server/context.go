package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/docsmith/workspace-mcp/internal/calendar"
	"github.com/docsmith/workspace-mcp/internal/docs"
	"github.com/docsmith/workspace-mcp/internal/drive"
	"github.com/docsmith/workspace-mcp/internal/google"
	"github.com/docsmith/workspace-mcp/internal/instrumentation"
	"github.com/docsmith/workspace-mcp/internal/sheets"
	"github.com/docsmith/workspace-mcp/internal/slides"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	// Per-account client caches, created lazily on first use
	docsClients     map[string]*docs.Client
	driveClients    map[string]*drive.Client
	sheetsClients   map[string]*sheets.Client
	slidesClients   map[string]*slides.Client
	calendarClients map[string]*calendar.Client

	// tokenProvider supplies OAuth tokens; the file-based provider is the
	// default, HTTP transports inject a store-backed one
	tokenProvider google.TokenProvider

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context using the file-based token
// provider (STDIO transport).
func NewServerContext(ctx context.Context) (*ServerContext, error) {
	return NewServerContextWithProvider(ctx, google.NewFileTokenProvider())
}

// NewServerContextWithProvider creates a new server context with the given
// token provider (HTTP transports inject the OAuth store here).
func NewServerContextWithProvider(ctx context.Context, tokenProvider google.TokenProvider) (*ServerContext, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		docsClients:     make(map[string]*docs.Client),
		driveClients:    make(map[string]*drive.Client),
		sheetsClients:   make(map[string]*sheets.Client),
		slidesClients:   make(map[string]*slides.Client),
		calendarClients: make(map[string]*calendar.Client),
		tokenProvider:   tokenProvider,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// TokenProvider returns the token provider used for Google API clients
func (sc *ServerContext) TokenProvider() google.TokenProvider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.tokenProvider
}

// SetMetrics sets the metrics recorder used by instrumented tool handlers
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil when metrics are disabled
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger used by instrumented tool handlers
func (sc *ServerContext) SetAuditLogger(auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = auditLogger
}

// AuditLogger returns the audit logger, or nil when audit logging is disabled
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// DocsClientForAccount returns the Docs client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) DocsClientForAccount(account string) *docs.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.docsClients[account]; ok {
		return client
	}
	if !sc.tokenProvider.HasTokenForAccount(account) {
		return nil
	}
	client, err := docs.NewClientForAccountWithProvider(sc.ctx, account, sc.tokenProvider)
	if err != nil {
		fmt.Printf("Warning: failed to create Docs client for account %s: %v\n", account, err)
		return nil
	}
	sc.docsClients[account] = client
	return client
}

// DocsClient returns the Docs client for the default account
func (sc *ServerContext) DocsClient() *docs.Client {
	return sc.DocsClientForAccount("default")
}

// SetDocsClientForAccount sets the Docs client for a specific account
func (sc *ServerContext) SetDocsClientForAccount(account string, client *docs.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.docsClients[account] = client
}

// DriveClientForAccount returns the Drive client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) DriveClientForAccount(account string) *drive.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.driveClients[account]; ok {
		return client
	}
	if !sc.tokenProvider.HasTokenForAccount(account) {
		return nil
	}
	client, err := drive.NewClientForAccountWithProvider(sc.ctx, account, sc.tokenProvider)
	if err != nil {
		fmt.Printf("Warning: failed to create Drive client for account %s: %v\n", account, err)
		return nil
	}
	sc.driveClients[account] = client
	return client
}

// DriveClient returns the Drive client for the default account
func (sc *ServerContext) DriveClient() *drive.Client {
	return sc.DriveClientForAccount("default")
}

// SetDriveClientForAccount sets the Drive client for a specific account
func (sc *ServerContext) SetDriveClientForAccount(account string, client *drive.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.driveClients[account] = client
}

// SheetsClientForAccount returns the Sheets client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) SheetsClientForAccount(account string) *sheets.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.sheetsClients[account]; ok {
		return client
	}
	if !sc.tokenProvider.HasTokenForAccount(account) {
		return nil
	}
	client, err := sheets.NewClientForAccountWithProvider(sc.ctx, account, sc.tokenProvider)
	if err != nil {
		fmt.Printf("Warning: failed to create Sheets client for account %s: %v\n", account, err)
		return nil
	}
	sc.sheetsClients[account] = client
	return client
}

// SetSheetsClientForAccount sets the Sheets client for a specific account
func (sc *ServerContext) SetSheetsClientForAccount(account string, client *sheets.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.sheetsClients[account] = client
}

// SlidesClientForAccount returns the Slides client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) SlidesClientForAccount(account string) *slides.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.slidesClients[account]; ok {
		return client
	}
	if !sc.tokenProvider.HasTokenForAccount(account) {
		return nil
	}
	client, err := slides.NewClientForAccountWithProvider(sc.ctx, account, sc.tokenProvider)
	if err != nil {
		fmt.Printf("Warning: failed to create Slides client for account %s: %v\n", account, err)
		return nil
	}
	sc.slidesClients[account] = client
	return client
}

// SetSlidesClientForAccount sets the Slides client for a specific account
func (sc *ServerContext) SetSlidesClientForAccount(account string, client *slides.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.slidesClients[account] = client
}

// CalendarClientForAccount returns the Calendar client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) CalendarClientForAccount(account string) *calendar.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.calendarClients[account]; ok {
		return client
	}
	if !sc.tokenProvider.HasTokenForAccount(account) {
		return nil
	}
	client, err := calendar.NewClientForAccountWithProvider(sc.ctx, account, sc.tokenProvider)
	if err != nil {
		fmt.Printf("Warning: failed to create Calendar client for account %s: %v\n", account, err)
		return nil
	}
	sc.calendarClients[account] = client
	return client
}

// SetCalendarClientForAccount sets the Calendar client for a specific account
func (sc *ServerContext) SetCalendarClientForAccount(account string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClients[account] = client
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
