package session

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
	nodex "github.com/tanpawarit/scoreai-client/agent/nodes/turn"
)

type turnRunner = compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

// compileAgentGraph wires one score-agent turn:
// prepare -> fetch_catalog -> invoke_agent -> correlate_score -> finalize_turn.
func compileAgentGraph(
	ctx context.Context,
	catalog contractx.Catalog,
	gateway contractx.AgentGateway,
	logger zerolog.Logger,
) (turnRunner, error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("prepare",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.Prepare(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node prepare: %w", err)
	}

	if err := graph.AddLambdaNode("fetch_catalog",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.FetchCatalog(ctx, in, catalog)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node fetch_catalog: %w", err)
	}

	if err := graph.AddLambdaNode("invoke_agent",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.InvokeAgent(ctx, in, gateway)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node invoke_agent: %w", err)
	}

	if err := graph.AddLambdaNode("correlate_score",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.CorrelateScore(ctx, in, catalog, logger)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node correlate_score: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_turn",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeTurn(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_turn: %w", err)
	}

	edges := [][2]string{
		{compose.START, "prepare"},
		{"prepare", "fetch_catalog"},
		{"fetch_catalog", "invoke_agent"},
		{"invoke_agent", "correlate_score"},
		{"correlate_score", "finalize_turn"},
		{"finalize_turn", compose.END},
	}
	if err := addEdges(graph, edges); err != nil {
		return nil, err
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("session.agent_turn"))
	if err != nil {
		return nil, fmt.Errorf("compile agent turn graph: %w", err)
	}
	return runner, nil
}

// compileImslpGraph wires one IMSLP lookup turn. It sends no catalog and
// resolves no score: prepare -> invoke_imslp_agent -> finalize_turn.
func compileImslpGraph(ctx context.Context, gateway contractx.AgentGateway) (turnRunner, error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("prepare",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.Prepare(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node prepare: %w", err)
	}

	if err := graph.AddLambdaNode("invoke_imslp_agent",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.InvokeImslpAgent(ctx, in, gateway)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node invoke_imslp_agent: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_turn",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeTurn(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_turn: %w", err)
	}

	edges := [][2]string{
		{compose.START, "prepare"},
		{"prepare", "invoke_imslp_agent"},
		{"invoke_imslp_agent", "finalize_turn"},
		{"finalize_turn", compose.END},
	}
	if err := addEdges(graph, edges); err != nil {
		return nil, err
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("session.imslp_turn"))
	if err != nil {
		return nil, fmt.Errorf("compile imslp turn graph: %w", err)
	}
	return runner, nil
}

func addEdges(graph *compose.Graph[nodex.GraphInput, nodex.GraphOutput], edges [][2]string) error {
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}
