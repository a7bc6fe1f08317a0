package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// AppBlobsColumns holds the columns for the "app_blobs" table.
	AppBlobsColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "revision", Type: field.TypeInt64, Default: 0},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	// AppBlobsTable holds the schema information for the "app_blobs" table.
	AppBlobsTable = &schema.Table{
		Name:       "app_blobs",
		Columns:    AppBlobsColumns,
		PrimaryKey: []*schema.Column{AppBlobsColumns[0]},
	}

	// LlmEventsColumns holds the columns for the "llm_events" table.
	LlmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LlmEventsTable holds the schema information for the "llm_events" table.
	LlmEventsTable = &schema.Table{
		Name:       "llm_events",
		Columns:    LlmEventsColumns,
		PrimaryKey: []*schema.Column{LlmEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{LlmEventsColumns[4]},
			},
			{
				Name:    "llmevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{LlmEventsColumns[1]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AppBlobsTable,
		LlmEventsTable,
	}
)
