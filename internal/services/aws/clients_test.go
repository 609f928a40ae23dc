package aws

import (
	"context"
	"testing"
)

func TestLoadOptions(t *testing.T) {
	if got := loadOptions(Settings{}); len(got) != 0 {
		t.Fatalf("expected no options for empty settings, got %d", len(got))
	}
	if got := loadOptions(Settings{Region: "us-east-1"}); len(got) != 1 {
		t.Fatalf("expected region option only, got %d", len(got))
	}
	if got := loadOptions(Settings{Region: "us-east-1", AccessKeyID: "AKIA", SecretAccessKey: ""}); len(got) != 1 {
		t.Fatalf("expected partial credentials to be ignored, got %d options", len(got))
	}
	if got := loadOptions(Settings{Region: "us-east-1", AccessKeyID: "AKIA", SecretAccessKey: "secret"}); len(got) != 2 {
		t.Fatalf("expected region and credentials options, got %d", len(got))
	}
}

func TestNewUsesStaticCredentials(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", t.TempDir()+"/config")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", t.TempDir()+"/credentials")

	clients, err := New(context.Background(), Settings{
		Region:          "eu-west-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if clients.Region != "eu-west-1" {
		t.Fatalf("expected region eu-west-1, got %q", clients.Region)
	}
	if clients.S3 == nil || clients.Transcribe == nil {
		t.Fatal("expected both clients")
	}
	creds, err := clients.S3.Options().Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("retrieve credentials: %v", err)
	}
	if creds.AccessKeyID != "AKIDEXAMPLE" {
		t.Fatalf("expected static key, got %q", creds.AccessKeyID)
	}
}

func TestLoadConfigRequiresRegion(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", t.TempDir()+"/config")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", t.TempDir()+"/credentials")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")

	if _, err := LoadConfig(context.Background(), Settings{}); err == nil {
		t.Fatal("expected error without a region")
	}
}
