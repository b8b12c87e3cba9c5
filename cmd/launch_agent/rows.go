package main

import (
	"github.com/jonathan/launch-orchestrator/internal/observability"
	"github.com/jonathan/launch-orchestrator/internal/pipeline"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

func boardRows(states []pipeline.TaskState) []observability.BoardRow {
	rows := make([]observability.BoardRow, len(states))
	for i, st := range states {
		rows[i] = observability.BoardRow{
			Index:    st.Index,
			Task:     st.Task.String(),
			Category: st.Category,
			Done:     st.Done,
			Locked:   st.Locked,
			Ready:    st.Ready,
			Missing:  types.FieldNames(st.Missing),
		}
	}
	return rows
}

func reportRows(report *pipeline.Report) []observability.ReportRow {
	if report == nil {
		return nil
	}
	rows := make([]observability.ReportRow, len(report.Outcomes))
	for i, o := range report.Outcomes {
		rows[i] = observability.ReportRow{
			Task:     o.Task.String(),
			Status:   o.Status,
			Reason:   o.Reason,
			Duration: o.Duration,
		}
	}
	return rows
}
