package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/roster-viewer/internal/adapters/pdf"
	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/ports"
)

func report(n int) ports.Report {
	r := ports.Report{
		Title:       "Employee Roster",
		GeneratedAt: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Criteria:    domain.FilterCriteria{Department: "HR"},
	}
	for i := 0; i < n; i++ {
		r.Records = append(r.Records, domain.Employee{
			ID: int64(i + 1), Name: fmt.Sprintf("Ström %d", i), Department: "HR",
			Role: "Analyst", Salary: decimal.NewFromInt(50000), Active: i%2 == 0,
		})
	}
	return r
}

func TestExport_WritesPDF(t *testing.T) {
	g := pdf.New()
	assert.Equal(t, "application/pdf", g.ContentType())
	assert.Equal(t, "pdf", g.Extension())

	var buf bytes.Buffer
	require.NoError(t, g.Export(context.Background(), report(3), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "missing PDF magic")
}

func TestExport_ManyRowsSpanPages(t *testing.T) {
	var small, large bytes.Buffer
	require.NoError(t, pdf.New().Export(context.Background(), report(2), &small))
	require.NoError(t, pdf.New().Export(context.Background(), report(120), &large))
	assert.Greater(t, bytes.Count(large.Bytes(), []byte("/Type /Page\n")), 1)
	assert.Greater(t, large.Len(), small.Len())
}

func TestExport_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pdf.New().Export(context.Background(), ports.Report{}, &buf))
	assert.NotZero(t, buf.Len())
}

func TestExport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	assert.ErrorIs(t, pdf.New().Export(ctx, report(1), &buf), context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestCriteriaSummary(t *testing.T) {
	tests := []struct {
		c    domain.FilterCriteria
		want string
	}{
		{domain.FilterCriteria{}, "Filter: all employees"},
		{domain.FilterCriteria{Department: "HR"}, "Filter: Department: HR"},
		{
			domain.FilterCriteria{Name: "al", Department: "HR", Status: domain.StatusInactive},
			`Filter: Name contains "al" / Department: HR / Status: Inactive`,
		},
	}
	for _, tt := range tests {
		if got := pdf.CriteriaSummary(tt.c); got != tt.want {
			t.Errorf("CriteriaSummary(%+v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}
