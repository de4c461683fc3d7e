package pyast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClassWithDecoratedRun(t *testing.T) {
	src := "" +
		"@workflow.defn\n" +
		"class MoneyTransfer:\n" +
		"    @workflow.run\n" +
		"    async def run(self, ctx):\n" +
		"        await workflow.execute_activity(withdraw_funds)\n" +
		"        await workflow.execute_activity(deposit_funds)\n"

	mod, err := Parse("transfer.py", src)
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)

	class, ok := mod.Body[0].(*ClassDef)
	require.True(t, ok)
	require.Equal(t, "MoneyTransfer", class.Name)
	require.Len(t, class.Decorators, 1)
	require.Equal(t, "workflow.defn", class.Decorators[0].DottedName)
	require.Len(t, class.Body, 1)

	run, ok := class.Body[0].(*FuncDef)
	require.True(t, ok)
	require.Equal(t, "run", run.Name)
	require.Len(t, run.Decorators, 1)
	require.Equal(t, "workflow.run", run.Decorators[0].DottedName)
	require.Len(t, run.Body, 2)

	stmt, ok := run.Body[0].(*ExprStmt)
	require.True(t, ok)
	await, ok := stmt.Value.(*Await)
	require.True(t, ok)
	call, ok := await.Value.(*Call)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
	name, ok := call.Args[0].(*Name)
	require.True(t, ok)
	require.Equal(t, "withdraw_funds", name.Id)
}

func TestParseFStringPlaceholder(t *testing.T) {
	src := "target = f\"shipping-{self.region}-east\"\n"
	mod, err := Parse("a.py", src)
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)
	assign, ok := mod.Body[0].(*Assign)
	require.True(t, ok)
	fs, ok := assign.Value.(*FString)
	require.True(t, ok)
	require.Len(t, fs.Parts, 3)
	require.Equal(t, "shipping-", fs.Parts[0].Literal)
	require.True(t, fs.Parts[1].IsExpr)
	require.Equal(t, "-east", fs.Parts[2].Literal)
}

func TestParseForLoopIsDetected(t *testing.T) {
	src := "" +
		"class W:\n" +
		"    async def run(self):\n" +
		"        for item in items:\n" +
		"            pass\n"
	mod, err := Parse("a.py", src)
	require.NoError(t, err)
	class := mod.Body[0].(*ClassDef)
	run := class.Body[0].(*FuncDef)
	require.Len(t, run.Body, 1)
	_, ok := run.Body[0].(*ForStmt)
	require.True(t, ok)
}

func TestParseIfElifElse(t *testing.T) {
	src := "" +
		"class W:\n" +
		"    async def run(self):\n" +
		"        if a:\n" +
		"            x = 1\n" +
		"        elif b:\n" +
		"            x = 2\n" +
		"        else:\n" +
		"            x = 3\n"
	mod, err := Parse("a.py", src)
	require.NoError(t, err)
	run := mod.Body[0].(*ClassDef).Body[0].(*FuncDef)
	ifStmt := run.Body[0].(*IfStmt)
	require.Len(t, ifStmt.Body, 1)
	require.Len(t, ifStmt.Orelse, 1)
	elifStmt := ifStmt.Orelse[0].(*IfStmt)
	require.Len(t, elifStmt.Body, 1)
	require.Len(t, elifStmt.Orelse, 1)
}

func TestSyntaxErrorOnUnterminatedString(t *testing.T) {
	_, err := Parse("a.py", "x = 'unterminated\n")
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}
