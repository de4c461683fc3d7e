package classifier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smilemakc/workflowgraphs/internal/domain"
	"github.com/smilemakc/workflowgraphs/internal/errs"
	"github.com/smilemakc/workflowgraphs/internal/locator"
	"github.com/smilemakc/workflowgraphs/internal/pyast"
)

func locate(t *testing.T, src string) *locator.Located {
	t.Helper()
	mod, err := pyast.Parse("t.py", src)
	require.NoError(t, err)
	found, err := locator.Locate(mod, "t.py")
	require.NoError(t, err)
	return found[0]
}

func TestClassifyLinearWorkflow(t *testing.T) {
	loc := locate(t, ""+
		"@workflow.defn\n"+
		"class Linear:\n"+
		"    @workflow.run\n"+
		"    async def run(self):\n"+
		"        await workflow.execute_activity(validate_input)\n"+
		"        await workflow.execute_activity(process_data)\n"+
		"        await workflow.execute_activity(save_result)\n")

	wf, err := Classify(loc, "t.py")
	require.NoError(t, err)
	require.Equal(t, 0, wf.BranchCount())
	require.Len(t, wf.CallSites, 3)
	require.Equal(t, "validate_input", wf.CallSites[0].Label())
	require.Equal(t, "process_data", wf.CallSites[1].Label())
	require.Equal(t, "save_result", wf.CallSites[2].Label())
}

func TestClassifyTwoDecisions(t *testing.T) {
	loc := locate(t, ""+
		"@workflow.defn\n"+
		"class Transfer:\n"+
		"    @workflow.run\n"+
		"    async def run(self):\n"+
		"        await workflow.execute_activity(withdraw_funds)\n"+
		"        needs_convert = workflow.to_decision(self.currency_differs(), \"NeedToConvert\")\n"+
		"        await workflow.execute_activity(currency_convert)\n"+
		"        tfn_known = workflow.to_decision(self.has_tfn(), \"IsTFN_Known\")\n"+
		"        await workflow.execute_activity(notify_ato)\n"+
		"        await workflow.execute_activity(deposit_funds)\n")

	wf, err := Classify(loc, "t.py")
	require.NoError(t, err)
	require.Equal(t, 2, wf.BranchCount())
	require.Len(t, wf.CallSites, 6)
	dec, ok := wf.CallSites[1].(*domain.DecisionPoint)
	require.True(t, ok)
	require.Equal(t, "NeedToConvert", dec.Text)
}

func TestClassifyWaitPoint(t *testing.T) {
	loc := locate(t, ""+
		"@workflow.defn\n"+
		"class Approval:\n"+
		"    @workflow.run\n"+
		"    async def run(self):\n"+
		"        await workflow.execute_activity(submit_request)\n"+
		"        await workflow.wait_condition(self.approved, timedelta(hours=1), \"WaitForApproval\")\n"+
		"        await workflow.execute_activity(process_approved)\n"+
		"        await workflow.execute_activity(handle_timeout)\n")

	wf, err := Classify(loc, "t.py")
	require.NoError(t, err)
	require.Equal(t, 1, wf.BranchCount())
	wp, ok := wf.CallSites[1].(*domain.WaitPoint)
	require.True(t, ok)
	require.Equal(t, "WaitForApproval", wp.Text)
	require.Equal(t, []string{"WaitForApproval"}, wf.WaitSignalNames)
}

func TestClassifyIgnoresTwoArgumentWait(t *testing.T) {
	loc := locate(t, ""+
		"@workflow.defn\n"+
		"class W:\n"+
		"    @workflow.run\n"+
		"    async def run(self):\n"+
		"        await workflow.wait_condition(self.ready, timedelta(seconds=5))\n"+
		"        await workflow.execute_activity(finish)\n")

	wf, err := Classify(loc, "t.py")
	require.NoError(t, err)
	require.Equal(t, 0, wf.BranchCount())
	require.Len(t, wf.CallSites, 1)
}

func TestClassifyExternalSignalWithMaskedTarget(t *testing.T) {
	loc := locate(t, ""+
		"@workflow.defn\n"+
		"class Sender:\n"+
		"    @workflow.run\n"+
		"    async def run(self):\n"+
		"        handle = workflow.get_external_workflow_handle(\"x\")\n"+
		"        await handle.signal(\"ship_order\", f\"shipping-{self.region}-east\")\n")

	wf, err := Classify(loc, "t.py")
	require.NoError(t, err)
	require.Len(t, wf.CallSites, 1)
	sig, ok := wf.CallSites[0].(*domain.ExternalSignalSend)
	require.True(t, ok)
	require.Equal(t, "ship_order", sig.SignalName)
	require.Equal(t, "shipping-{*}-east", sig.TargetPattern)
}

func TestClassifyRejectsLoop(t *testing.T) {
	loc := locate(t, ""+
		"@workflow.defn\n"+
		"class W:\n"+
		"    @workflow.run\n"+
		"    async def run(self):\n"+
		"        for item in self.items:\n"+
		"            await workflow.execute_activity(process_item)\n")

	_, err := Classify(loc, "t.py")
	require.Error(t, err)
	var unsupported *errs.UnsupportedConstructError
	require.ErrorAs(t, err, &unsupported)
}

func TestClassifyRejectsNonLiteralDecisionName(t *testing.T) {
	loc := locate(t, ""+
		"@workflow.defn\n"+
		"class W:\n"+
		"    @workflow.run\n"+
		"    async def run(self):\n"+
		"        workflow.to_decision(self.cond(), self.dynamic_label())\n")

	_, err := Classify(loc, "t.py")
	require.Error(t, err)
	var usageErr *errs.UsageError
	require.ErrorAs(t, err, &usageErr)
}
