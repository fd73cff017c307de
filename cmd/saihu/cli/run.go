package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adfeel220/saihu/config"
	"github.com/adfeel220/saihu/flowstate"
	"github.com/adfeel220/saihu/lp"
	"github.com/adfeel220/saihu/netio"
	"github.com/adfeel220/saihu/netmodel"
	"github.com/adfeel220/saihu/result"
	"github.com/adfeel220/saihu/xtfa"
	"github.com/adfeel220/saihu/xtfa/pipeline"
)

// runAnalysis loads the network description named by inputPath, runs the
// selected method over it, and writes the aggregated report to out.
func runAnalysis(out io.Writer) error {
	net, err := loadNetwork(inputPath, format)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	agg := result.NewAggregator()

	switch method {
	case "tfa":
		if err := runLinearLP(net, "tfa", false, agg); err != nil {
			return err
		}
	case "tfa++":
		if err := runLinearLP(net, "tfa++", true, agg); err != nil {
			return err
		}
	case "sfa":
		if err := runFlowOfInterestLP(net, "sfa", lp.BuildSFA, lp.SFADelayVar, agg); err != nil {
			return err
		}
	case "plp":
		if err := runFlowOfInterestLP(net, "plp", lp.BuildPLP, lp.PLPDelayVar, agg); err != nil {
			return err
		}
	case "elp":
		if err := runFlowOfInterestLP(net, "elp", lp.BuildELP, lp.ELPDelayVar, agg); err != nil {
			return err
		}
	case "xtfa":
		if err := runXTFA(net, cfg, agg); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cli: unknown method %q", method)
	}

	return printReport(out, agg.Report())
}

// loadNetwork decodes path using format if given, or the format guessed
// from path's extension (.json, .yaml/.yml, .xml).
func loadNetwork(path, format string) (*netmodel.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cli: opening %q: %w", path, err)
	}
	defer f.Close()

	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = "yaml"
		case ".xml":
			format = "wopanet"
		default:
			format = "json"
		}
	}

	switch format {
	case "json":
		return netio.DecodeJSON(f)
	case "yaml":
		return netio.DecodeYAML(f)
	case "wopanet":
		return netio.DecodeWOPANet(f)
	default:
		return nil, fmt.Errorf("cli: unknown format %q", format)
	}
}

// runLinearLP runs BuildTFA (shaping=false for tfa, true for tfa++), which
// produces every server's and every flow's delay in one LP.
func runLinearLP(net *netmodel.Network, methodName string, shaping bool, agg *result.Aggregator) error {
	start := time.Now()
	prob, err := lp.BuildTFA(net, shaping)
	if err != nil {
		return fmt.Errorf("cli: building %s LP: %w", methodName, err)
	}
	sol, err := lp.Solve(prob, lp.LPSolveSolver{Path: solverPath})
	if err != nil {
		return fmt.Errorf("cli: solving %s LP: %w", methodName, err)
	}
	mr, err := result.FromTFA(net, methodName, sol, time.Since(start))
	if err != nil {
		return err
	}
	agg.Add(mr)
	return nil
}

// runFlowOfInterestLP runs build once per flow in net (SFA/PLP/ELP each
// solve one flow of interest at a time), accumulating one MethodResult per
// flow into agg.
func runFlowOfInterestLP(net *netmodel.Network, methodName string, build func(*netmodel.Network, string) (*lp.Problem, error), delayVar func(string) string, agg *result.Aggregator) error {
	for _, fl := range net.Flows {
		start := time.Now()
		prob, err := build(net, fl.Name)
		if err != nil {
			return fmt.Errorf("cli: building %s LP for flow %q: %w", methodName, fl.Name, err)
		}
		sol, err := lp.Solve(prob, lp.LPSolveSolver{Path: solverPath})
		if err != nil {
			return fmt.Errorf("cli: solving %s LP for flow %q: %w", methodName, fl.Name, err)
		}
		mr := result.FromFlowOfInterest(methodName, fl.Name, delayVar(fl.Name), sol, time.Since(start))
		agg.Add(mr)
	}
	return nil
}

// runXTFA runs the feed-forward driver (or the cyclic fix-point driver,
// with --cyclic) over every server and flow in net.
func runXTFA(net *netmodel.Network, cfg config.Config, agg *result.Aggregator) error {
	flows := make(map[pipeline.FlowKey]*flowstate.Flow)
	for _, fl := range net.Flows {
		paths := fl.AllPaths()
		sf, err := flowstate.NewFlow(fl.Name, fl.Arrival, fl.MaxPacketLength, fl.MinPacketLength, "", paths)
		if err != nil {
			return fmt.Errorf("cli: building flow state for %q: %w", fl.Name, err)
		}
		for pathName := range paths {
			flows[pipeline.FlowKey{Name: fl.Name, Path: pathName}] = sf
		}
	}

	pcfg := pipeline.Config{Clock: cfg.ClockConfig()}
	start := time.Now()

	var report xtfa.Report
	var err error
	if cyclic {
		driver := xtfa.CyclicFixPointDriver{
			Network:       net,
			Flows:         flows,
			Cfg:           pcfg,
			Steps:         xtfa.DefaultSteps(),
			MaxIterations: cfg.Driver.MaxIterations,
		}
		report, err = driver.Run()
	} else {
		driver := xtfa.FeedForwardDriver{Network: net, Flows: flows, Cfg: pcfg, Steps: xtfa.DefaultSteps()}
		report, err = driver.Run()
	}
	if err != nil {
		return fmt.Errorf("cli: running xtfa driver: %w", err)
	}

	mr, err := result.FromXTFA(net, "xtfa", report, time.Since(start))
	if err != nil {
		return err
	}
	agg.Add(mr)
	return nil
}

// printReport writes a plain, deterministically-ordered table of the
// aggregated report to out.
func printReport(out io.Writer, rep result.Report) error {
	flowNames := make([]string, 0, len(rep.Flows))
	for name := range rep.Flows {
		flowNames = append(flowNames, name)
	}
	sort.Strings(flowNames)

	fmt.Fprintln(out, "Flow delays (seconds):")
	for _, name := range flowNames {
		fr := rep.Flows[name]
		methods := sortedMethodKeys(fr.ByMethod)
		var parts []string
		for _, m := range methods {
			parts = append(parts, fmt.Sprintf("%s=%.6g", m, fr.ByMethod[m]))
		}
		fmt.Fprintf(out, "  %-16s best=%.6g (%s)  [%s]\n", name, fr.Best, fr.BestMethod, strings.Join(parts, ", "))
	}

	serverNames := make([]string, 0, len(rep.Servers))
	for name := range rep.Servers {
		serverNames = append(serverNames, name)
	}
	sort.Strings(serverNames)

	if len(serverNames) > 0 {
		fmt.Fprintln(out, "Server delays (seconds):")
		for _, name := range serverNames {
			sr := rep.Servers[name]
			methods := sortedMethodKeys(sr.ByMethod)
			var parts []string
			for _, m := range methods {
				parts = append(parts, fmt.Sprintf("%s=%.6g", m, sr.ByMethod[m]))
			}
			fmt.Fprintf(out, "  %-16s [%s]\n", name, strings.Join(parts, ", "))
		}
	}

	methodNames := make([]string, 0, len(rep.ExecTimes))
	for name := range rep.ExecTimes {
		methodNames = append(methodNames, name)
	}
	sort.Strings(methodNames)
	if len(methodNames) > 0 {
		fmt.Fprintln(out, "Execution time:")
		for _, name := range methodNames {
			fmt.Fprintf(out, "  %-8s %s\n", name, rep.ExecTimes[name])
		}
	}

	return nil
}

func sortedMethodKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
