// Package workflow recommends ordered LakeXpress command sequences.
package workflow

import "fmt"

// Step is one recommended command in a workflow.
type Step struct {
	Step        string `json:"step"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// Suggestion is an ordered workflow for a source/destination pairing.
type Suggestion struct {
	SourceType    string `json:"source_type"`
	Destination   string `json:"destination"`
	PublishTarget string `json:"publish_target,omitempty"`
	Steps         []Step `json:"steps"`
}

// Suggest builds the recommended command sequence for exporting from the
// given source type to the given destination, optionally publishing to a
// lakehouse target afterwards.
func Suggest(sourceType, destination, publishTarget string) *Suggestion {
	var steps []Step

	steps = append(steps, Step{
		Step:        "1",
		Command:     "logdb init",
		Description: "Initialize the log database schema (first-time setup only)",
		Example:     "LakeXpress logdb init -a auth.json --log_db_auth_id export_db",
	})

	configDesc := fmt.Sprintf("Create sync configuration for %s source", sourceType)
	configExample := "LakeXpress config create -a auth.json --log_db_auth_id export_db --source_db_auth_id source_db"
	if destination == "local" {
		configExample += " --output_dir ./exports"
		configDesc += " with local storage"
	} else {
		configExample += fmt.Sprintf(" --target_storage_id %s_storage", destination)
		configDesc += fmt.Sprintf(" with %s storage", destination)
	}
	if publishTarget != "" {
		configExample += fmt.Sprintf(" --publish_target %s_target", publishTarget)
		configDesc += fmt.Sprintf(" and %s publishing", publishTarget)
	}
	steps = append(steps, Step{
		Step:        "2",
		Command:     "config create",
		Description: configDesc,
		Example:     configExample,
	})

	if publishTarget != "" {
		steps = append(steps, Step{
			Step:        "3",
			Command:     "sync",
			Description: "Execute full sync (export + publish)",
			Example:     "LakeXpress sync --sync_id <sync_id>",
		})
		steps = append(steps, Step{
			Step:        "3a",
			Command:     "sync[export] + sync[publish]",
			Description: "Alternative: run export and publish separately",
			Example:     "LakeXpress 'sync[export]' --sync_id <sync_id>\nLakeXpress 'sync[publish]' --sync_id <sync_id>",
		})
	} else {
		steps = append(steps, Step{
			Step:        "3",
			Command:     "sync[export]",
			Description: "Execute export only (no publishing target configured)",
			Example:     "LakeXpress 'sync[export]' --sync_id <sync_id>",
		})
	}

	steps = append(steps, Step{
		Step:        "4",
		Command:     "status",
		Description: "Check the status of the sync run",
		Example:     "LakeXpress status -a auth.json --log_db_auth_id export_db --sync_id <sync_id>",
	})

	return &Suggestion{
		SourceType:    sourceType,
		Destination:   destination,
		PublishTarget: publishTarget,
		Steps:         steps,
	}
}
