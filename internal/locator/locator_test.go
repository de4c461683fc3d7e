package locator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smilemakc/workflowgraphs/internal/errs"
	"github.com/smilemakc/workflowgraphs/internal/pyast"
)

func mustParse(t *testing.T, src string) *pyast.Module {
	t.Helper()
	mod, err := pyast.Parse("t.py", src)
	require.NoError(t, err)
	return mod
}

func TestLocateFindsRunAndSignals(t *testing.T) {
	mod := mustParse(t, ""+
		"@workflow.defn\n"+
		"class OrderWorkflow:\n"+
		"    @workflow.signal\n"+
		"    def cancel(self):\n"+
		"        pass\n"+
		"    @workflow.run\n"+
		"    async def run(self):\n"+
		"        pass\n")

	found, err := Locate(mod, "t.py")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "OrderWorkflow", found[0].Name)
	require.Equal(t, "run", found[0].RunMethod.Name)
	require.Equal(t, []string{"cancel"}, found[0].SignalHandlers)
}

func TestLocateFailsWithoutWorkflow(t *testing.T) {
	mod := mustParse(t, "class Plain:\n    def run(self):\n        pass\n")
	_, err := Locate(mod, "t.py")
	require.Error(t, err)
	var parseErr *errs.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLocateFailsWithoutRunMethod(t *testing.T) {
	mod := mustParse(t, "@workflow.defn\nclass W:\n    def other(self):\n        pass\n")
	_, err := Locate(mod, "t.py")
	require.Error(t, err)
}

func TestLocateFailsOnAmbiguousRun(t *testing.T) {
	mod := mustParse(t, ""+
		"@workflow.defn\n"+
		"class W:\n"+
		"    @workflow.run\n"+
		"    async def run(self):\n"+
		"        pass\n"+
		"    @workflow.run\n"+
		"    async def run2(self):\n"+
		"        pass\n")
	_, err := Locate(mod, "t.py")
	require.Error(t, err)
}
