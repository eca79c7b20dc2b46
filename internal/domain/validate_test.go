package domain

import (
	"errors"
	"strings"
	"testing"
)

func validationErrors(t *testing.T, err error) *ValidationErrors {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var verrs *ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected *ValidationErrors, got %T: %v", err, err)
	}
	return verrs
}

func hasFieldError(verrs *ValidationErrors, field, fragment string) bool {
	for _, fe := range verrs.Errors {
		if fe.Field == field && strings.Contains(fe.Message, fragment) {
			return true
		}
	}
	return false
}

func TestValidateUnknownCommand(t *testing.T) {
	req := &Request{Command: "teleport"}
	verrs := validationErrors(t, req.Validate())
	if len(verrs.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(verrs.Errors), verrs.Errors)
	}
	if !hasFieldError(verrs, "command", "unknown command") {
		t.Errorf("errors = %v, want one on field command", verrs.Errors)
	}
}

func TestValidateMissingVariant(t *testing.T) {
	// Declares config_create but supplies only sync parameters.
	req := &Request{
		Command: CommandConfigCreate,
		Sync:    &SyncParams{SyncID: "s1"},
	}
	verrs := validationErrors(t, req.Validate())
	if len(verrs.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(verrs.Errors), verrs.Errors)
	}
	fe := verrs.Errors[0]
	if fe.Field != "config_create" {
		t.Errorf("field = %q, want config_create", fe.Field)
	}
	if !strings.Contains(fe.Message, `"config_create"`) {
		t.Errorf("message should name the missing variant: %q", fe.Message)
	}
}

func TestValidateGlobalOptionsRequired(t *testing.T) {
	req := &Request{
		Command:   CommandLogdbInit,
		LogdbInit: &LogdbInitParams{},
	}
	verrs := validationErrors(t, req.Validate())
	if !hasFieldError(verrs, "logdb_init.auth_file", "required") {
		t.Errorf("missing auth_file error: %v", verrs.Errors)
	}
	if !hasFieldError(verrs, "logdb_init.log_db_auth_id", "required") {
		t.Errorf("missing log_db_auth_id error: %v", verrs.Errors)
	}
}

func TestValidateInvalidLogLevel(t *testing.T) {
	req := &Request{
		Command: CommandStatus,
		Status: &StatusParams{
			GlobalOptions: GlobalOptions{
				AuthFile:    "a.json",
				LogDBAuthID: "db",
				LogLevel:    "LOUD",
			},
		},
	}
	verrs := validationErrors(t, req.Validate())
	if !hasFieldError(verrs, "status.log_level", "LOUD") {
		t.Errorf("missing log_level error: %v", verrs.Errors)
	}
}

func TestValidateConfigCreate(t *testing.T) {
	base := func() *ConfigCreateParams {
		return &ConfigCreateParams{
			GlobalOptions:  GlobalOptions{AuthFile: "a.json", LogDBAuthID: "db"},
			SourceDBAuthID: "src",
		}
	}

	tests := []struct {
		name     string
		mutate   func(*ConfigCreateParams)
		wantErr  bool
		field    string
		fragment string
	}{
		{
			name:    "local destination valid",
			mutate:  func(p *ConfigCreateParams) { p.OutputDir = "/tmp/x" },
			wantErr: false,
		},
		{
			name:    "cloud destination valid",
			mutate:  func(p *ConfigCreateParams) { p.TargetStorageID = "s3-prod" },
			wantErr: false,
		},
		{
			name: "both destinations rejected",
			mutate: func(p *ConfigCreateParams) {
				p.OutputDir = "/tmp/x"
				p.TargetStorageID = "s3-prod"
			},
			wantErr:  true,
			field:    "config_create.output_dir",
			fragment: "mutually exclusive",
		},
		{
			name:     "no destination rejected",
			mutate:   func(p *ConfigCreateParams) {},
			wantErr:  true,
			field:    "config_create.output_dir",
			fragment: "at least one",
		},
		{
			name: "publish method without target rejected",
			mutate: func(p *ConfigCreateParams) {
				p.OutputDir = "/tmp/x"
				p.PublishMethod = PublishExternal
			},
			wantErr:  true,
			field:    "config_create.publish_method",
			fragment: "requires publish_target",
		},
		{
			name: "publish method with target valid",
			mutate: func(p *ConfigCreateParams) {
				p.OutputDir = "/tmp/x"
				p.PublishMethod = PublishExternal
				p.PublishTarget = "snowflake"
			},
			wantErr: false,
		},
		{
			name: "missing source credential rejected",
			mutate: func(p *ConfigCreateParams) {
				p.OutputDir = "/tmp/x"
				p.SourceDBAuthID = ""
			},
			wantErr:  true,
			field:    "config_create.source_db_auth_id",
			fragment: "required",
		},
		{
			name: "bad compression type rejected",
			mutate: func(p *ConfigCreateParams) {
				p.OutputDir = "/tmp/x"
				p.CompressionType = "Brotli"
			},
			wantErr:  true,
			field:    "config_create.compression_type",
			fragment: "Brotli",
		},
		{
			name: "bad error action rejected",
			mutate: func(p *ConfigCreateParams) {
				p.OutputDir = "/tmp/x"
				p.ErrorAction = "retry"
			},
			wantErr:  true,
			field:    "config_create.error_action",
			fragment: "retry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base()
			tt.mutate(params)
			req := &Request{Command: CommandConfigCreate, ConfigCreate: params}
			err := req.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			verrs := validationErrors(t, err)
			if !hasFieldError(verrs, tt.field, tt.fragment) {
				t.Errorf("errors = %v, want %q on field %q", verrs.Errors, tt.fragment, tt.field)
			}
		})
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	req := &Request{
		Command: CommandConfigCreate,
		ConfigCreate: &ConfigCreateParams{
			// auth_file, log_db_auth_id, source_db_auth_id and the
			// destination are all missing at once.
			CompressionType: "Brotli",
		},
	}
	verrs := validationErrors(t, req.Validate())
	wantFields := []string{
		"config_create.auth_file",
		"config_create.log_db_auth_id",
		"config_create.source_db_auth_id",
		"config_create.compression_type",
		"config_create.output_dir",
	}
	if len(verrs.Errors) != len(wantFields) {
		t.Fatalf("got %d errors, want %d: %v", len(verrs.Errors), len(wantFields), verrs.Errors)
	}
	for _, field := range wantFields {
		if !hasFieldError(verrs, field, "") {
			t.Errorf("missing error on field %q: %v", field, verrs.Errors)
		}
	}
}

func TestValidateSyncFamily(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr bool
	}{
		{
			name:    "sync minimal",
			req:     &Request{Command: CommandSync, Sync: &SyncParams{SyncID: "s1"}},
			wantErr: false,
		},
		{
			name: "sync bad log level",
			req: &Request{Command: CommandSync, Sync: &SyncParams{
				SyncID:        "s1",
				CommonOptions: CommonOptions{LogLevel: "CHATTY"},
			}},
			wantErr: true,
		},
		{
			name:    "sync export minimal",
			req:     &Request{Command: CommandSyncExport, SyncExport: &SyncExportParams{SyncID: "s1"}},
			wantErr: false,
		},
		{
			name:    "sync publish minimal",
			req:     &Request{Command: CommandSyncPublish, SyncPublish: &SyncPublishParams{SyncID: "s1"}},
			wantErr: false,
		},
		{
			name:    "run requires config",
			req:     &Request{Command: CommandRun, Run: &RunParams{}},
			wantErr: true,
		},
		{
			name:    "run with config",
			req:     &Request{Command: CommandRun, Run: &RunParams{Config: "export.yaml"}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateCleanup(t *testing.T) {
	global := GlobalOptions{AuthFile: "a.json", LogDBAuthID: "db"}

	req := &Request{
		Command: CommandCleanup,
		Cleanup: &CleanupParams{GlobalOptions: global},
	}
	verrs := validationErrors(t, req.Validate())
	if !hasFieldError(verrs, "cleanup.sync_id", "required") {
		t.Errorf("missing sync_id error: %v", verrs.Errors)
	}

	req = &Request{
		Command: CommandCleanup,
		Cleanup: &CleanupParams{GlobalOptions: global, SyncID: "s1", Status: "done"},
	}
	verrs = validationErrors(t, req.Validate())
	if !hasFieldError(verrs, "cleanup.status", "done") {
		t.Errorf("missing status error: %v", verrs.Errors)
	}

	req = &Request{
		Command: CommandCleanup,
		Cleanup: &CleanupParams{GlobalOptions: global, SyncID: "s1", Status: CleanupFailed, DryRun: true},
	}
	if err := req.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateConfigDeleteRequiresSyncID(t *testing.T) {
	req := &Request{
		Command: CommandConfigDelete,
		ConfigDelete: &ConfigDeleteParams{
			GlobalOptions: GlobalOptions{AuthFile: "a.json", LogDBAuthID: "db"},
		},
	}
	verrs := validationErrors(t, req.Validate())
	if !hasFieldError(verrs, "config_delete.sync_id", "required") {
		t.Errorf("missing sync_id error: %v", verrs.Errors)
	}
}
