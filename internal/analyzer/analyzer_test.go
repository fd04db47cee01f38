package analyzer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"claimcheck/internal/analyzer"
	"claimcheck/internal/domain"
	"claimcheck/mocks"
)

const docText = "CPT 99213, ICD-10 J06.9, Dr. Smith NPI 1234567890"

func unavailable(model string) error {
	return &analyzer.ModelUnavailableError{Model: model, Err: errors.New("status 404")}
}

func TestAnalyze_FirstModelSucceeds(t *testing.T) {
	client := new(mocks.MockModelClient)
	client.On("Complete", mock.Anything, "gpt-4.1", analyzer.AuditPrompt, docText).
		Return(`{"document_type":"Superbill","has_issues":false}`, nil)

	a := analyzer.New(client, []string{"gpt-4.1", "gpt-4.1-mini", "gpt-4"})
	result, err := a.Analyze(context.Background(), docText)

	require.NoError(t, err)
	assert.Equal(t, domain.DocTypeSuperbill, result.DocumentType)
	assert.False(t, result.HasIssues)
	client.AssertNumberOfCalls(t, "Complete", 1)
}

func TestAnalyze_FallsBackPastUnavailableModels(t *testing.T) {
	client := new(mocks.MockModelClient)
	client.On("Complete", mock.Anything, "gpt-4.1", mock.Anything, mock.Anything).
		Return("", unavailable("gpt-4.1"))
	client.On("Complete", mock.Anything, "gpt-4.1-mini", mock.Anything, mock.Anything).
		Return("", unavailable("gpt-4.1-mini"))
	client.On("Complete", mock.Anything, "gpt-4", mock.Anything, mock.Anything).
		Return(`{"document_type":"EOB","has_issues":true,"missing_codes":["CPT"]}`, nil)

	a := analyzer.New(client, []string{"gpt-4.1", "gpt-4.1-mini", "gpt-4"})
	result, err := a.Analyze(context.Background(), docText)

	require.NoError(t, err)
	assert.Equal(t, domain.DocTypeEOB, result.DocumentType)
	assert.Equal(t, []string{"CPT"}, result.MissingCodes)
	client.AssertNumberOfCalls(t, "Complete", 3)
}

func TestAnalyze_MessageTextSignalsUnavailable(t *testing.T) {
	// An untyped error whose text mentions the model is treated the same as
	// the typed rejection.
	client := new(mocks.MockModelClient)
	client.On("Complete", mock.Anything, "gpt-4.1", mock.Anything, mock.Anything).
		Return("", errors.New("the requested model does not exist"))
	client.On("Complete", mock.Anything, "gpt-4", mock.Anything, mock.Anything).
		Return(`{"document_type":"Unknown","has_issues":true}`, nil)

	a := analyzer.New(client, []string{"gpt-4.1", "gpt-4"})
	result, err := a.Analyze(context.Background(), docText)

	require.NoError(t, err)
	assert.Equal(t, domain.DocTypeUnknown, result.DocumentType)
}

func TestAnalyze_MalformedJSONAdvancesChain(t *testing.T) {
	client := new(mocks.MockModelClient)
	client.On("Complete", mock.Anything, "gpt-4.1", mock.Anything, mock.Anything).
		Return("Sure! Here is the JSON you asked for: {", nil)
	client.On("Complete", mock.Anything, "gpt-4", mock.Anything, mock.Anything).
		Return(`{"document_type":"Pharmacy Receipt","has_issues":false}`, nil)

	a := analyzer.New(client, []string{"gpt-4.1", "gpt-4"})
	result, err := a.Analyze(context.Background(), docText)

	require.NoError(t, err)
	assert.Equal(t, domain.DocTypePharmacyReceipt, result.DocumentType)
	client.AssertNumberOfCalls(t, "Complete", 2)
}

func TestAnalyze_OtherErrorPropagates(t *testing.T) {
	client := new(mocks.MockModelClient)
	transportErr := errors.New("analyzer API error (status 500): upstream timeout")
	client.On("Complete", mock.Anything, "gpt-4.1", mock.Anything, mock.Anything).
		Return("", transportErr)

	a := analyzer.New(client, []string{"gpt-4.1", "gpt-4"})
	result, err := a.Analyze(context.Background(), docText)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, transportErr)
	client.AssertNumberOfCalls(t, "Complete", 1)
}

func TestAnalyze_MissingCredentialStopsChain(t *testing.T) {
	// The sentinel's message mentions "not found"; it must still propagate as
	// a configuration error instead of advancing the fallback chain.
	client := new(mocks.MockModelClient)
	client.On("Complete", mock.Anything, "gpt-4.1", mock.Anything, mock.Anything).
		Return("", domain.ErrAnalyzerNotConfigured)

	a := analyzer.New(client, []string{"gpt-4.1", "gpt-4.1-mini", "gpt-4"})
	result, err := a.Analyze(context.Background(), docText)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrAnalyzerNotConfigured)
	client.AssertNumberOfCalls(t, "Complete", 1)
}

func TestAnalyze_ExhaustedChainReturnsSyntheticResult(t *testing.T) {
	client := new(mocks.MockModelClient)
	for _, m := range []string{"gpt-4.1", "gpt-4.1-mini", "gpt-4"} {
		client.On("Complete", mock.Anything, m, mock.Anything, mock.Anything).
			Return("", unavailable(m))
	}

	a := analyzer.New(client, []string{"gpt-4.1", "gpt-4.1-mini", "gpt-4"})
	result, err := a.Analyze(context.Background(), docText)

	require.NoError(t, err)
	assert.Equal(t, domain.DocTypeUnknown, result.DocumentType)
	assert.True(t, result.HasIssues)
	assert.NotEmpty(t, result.Errors)
	client.AssertNumberOfCalls(t, "Complete", 3)
}

func TestAnalyze_MissingDocumentTypeDefaultsToUnknown(t *testing.T) {
	client := new(mocks.MockModelClient)
	client.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(`{"has_issues":true,"errors":["no codes found"]}`, nil)

	a := analyzer.New(client, []string{"gpt-4.1"})
	result, err := a.Analyze(context.Background(), docText)

	require.NoError(t, err)
	assert.Equal(t, domain.DocTypeUnknown, result.DocumentType)
	assert.True(t, result.HasIssues)
}

func TestAnalyze_EmptyChainUsesDefaults(t *testing.T) {
	client := new(mocks.MockModelClient)
	client.On("Complete", mock.Anything, "gpt-4.1", mock.Anything, mock.Anything).
		Return(`{"document_type":"Superbill"}`, nil)

	a := analyzer.New(client, nil)
	result, err := a.Analyze(context.Background(), docText)

	require.NoError(t, err)
	assert.Equal(t, domain.DocTypeSuperbill, result.DocumentType)
}

func TestIsModelUnavailable(t *testing.T) {
	assert.True(t, analyzer.IsModelUnavailable(unavailable("x")))
	assert.True(t, analyzer.IsModelUnavailable(errors.New("Model gpt-9 does not exist")))
	assert.True(t, analyzer.IsModelUnavailable(errors.New("resource not found")))
	assert.False(t, analyzer.IsModelUnavailable(errors.New("connection refused")))
	assert.False(t, analyzer.IsModelUnavailable(domain.ErrAnalyzerNotConfigured))
	assert.False(t, analyzer.IsModelUnavailable(
		fmt.Errorf("completing request: %w", domain.ErrAnalyzerNotConfigured)))
}
