package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

func answered(text string, warnings ...string) domain.AskResult {
	return domain.AskResult{
		Success: true,
		Answer: &domain.Answer{
			Text:       text,
			Generation: domain.Generated(text),
			Warnings:   warnings,
		},
	}
}

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
	flag := askCmd.Flags().Lookup("json")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestAskCmd_JoinsArgs(t *testing.T) {
	env := setupTestServices(t)
	env.svc.ask = answered("Neha M has Python skills.")

	stdout, _, err := execute(t, nil, "ask", "Who", "has", "Python", "skills?")

	require.NoError(t, err)
	assert.Equal(t, []string{"Who has Python skills?"}, env.svc.asked)
	assert.Contains(t, stdout, "Neha M has Python skills.")
}

func TestAskCmd_PrintsWarningsToStderr(t *testing.T) {
	env := setupTestServices(t)
	env.svc.ask = answered("answer", "llm unavailable")

	stdout, stderr, err := execute(t, nil, "ask", "Who knows SQL?")

	require.NoError(t, err)
	assert.NotContains(t, stdout, "llm unavailable")
	assert.Contains(t, stderr, "warning: llm unavailable")
}

func TestAskCmd_FailureReturnsMessage(t *testing.T) {
	env := setupTestServices(t)
	env.svc.ask = domain.AskResult{Message: "Please enter a question."}

	stdout, _, err := execute(t, nil, "ask", "   ")

	require.Error(t, err)
	assert.Equal(t, "Please enter a question.", err.Error())
	assert.Contains(t, stdout, "Please enter a question.")
}

func TestAskCmd_JSON(t *testing.T) {
	env := setupTestServices(t)
	env.svc.ask = answered("json answer")

	stdout, _, err := execute(t, nil, "ask", "--json", "Who knows Java?")

	require.NoError(t, err)
	assert.Contains(t, stdout, `"success": true`)
	assert.Contains(t, stdout, `"text": "json answer"`)
}

func TestAskCmd_RunsSetupWhenNotReady(t *testing.T) {
	env := setupTestServices(t)
	env.svc.status.Ready = false
	env.svc.setup = domain.SetupResult{Success: true}
	env.svc.ask = answered("after setup")

	stdout, _, err := execute(t, nil, "ask", "Who knows React?")

	require.NoError(t, err)
	assert.Equal(t, 1, env.svc.setups)
	assert.Contains(t, stdout, "after setup")
}

func TestAskCmd_SetupFailureStops(t *testing.T) {
	env := setupTestServices(t)
	env.svc.status.Ready = false
	env.svc.setup = domain.SetupResult{Message: "No embedding backend available"}

	_, _, err := execute(t, nil, "ask", "Who knows React?")

	require.Error(t, err)
	assert.Empty(t, env.svc.asked)
}

func TestAskCmd_ReadsLinesFromStdin(t *testing.T) {
	env := setupTestServices(t)
	env.svc.ask = answered("an answer")

	in := strings.NewReader("Who has Python skills?\n\n  Who knows machine learning?  \n")
	stdout, _, err := execute(t, in, "ask")

	require.NoError(t, err)
	assert.Equal(t, []string{"Who has Python skills?", "Who knows machine learning?"}, env.svc.asked)
	assert.Contains(t, stdout, "Q: Who has Python skills?")
	assert.Equal(t, 2, strings.Count(stdout, "an answer"))
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, isTerminal(strings.NewReader("")))
}
