package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/trade"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderSide(tw *tabwriter.Writer, label string, s trade.Side) {
	fmt.Fprintf(tw, "Team %s gives\t\t\t\t\n", label)
	for _, a := range s.Assets {
		flags := []string{}
		if a.Aging {
			flags = append(flags, "aging")
		}
		if a.YoungCornerstone {
			flags = append(flags, "cornerstone")
		}
		if a.EarlyFirst {
			flags = append(flags, "early 1st")
		}
		fmt.Fprintf(tw, "  %s\ttier %d\t%.0f\t%s\t%s\n",
			a.Spec.Label(), a.Tier, a.Value, a.Source, strings.Join(flags, ","))
	}
	fmt.Fprintf(tw, "  total\t\t%.0f\t(raw %.0f, tilt %+.0f, consolidation %+.0f)\t\n",
		s.Total, s.Raw, s.Tilt, s.Consolidation)
}

func renderEvaluation(w io.Writer, ev *trade.Evaluation) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	renderSide(tw, trade.SideA, ev.SideA)
	renderSide(tw, trade.SideB, ev.SideB)
	tw.Flush()

	fmt.Fprintf(w, "\nGrade %s  %s  (gap %d%%, ratio %.2f", ev.Grade, ev.Classification, ev.PercentDiff, ev.ValueRatio)
	if ev.Favoured != "" {
		fmt.Fprintf(w, ", favours team %s", ev.Favoured)
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintf(w, "Rejection estimate %d%%  Tier parity %s  Timeline %s\n",
		ev.Sanity.RejectionEstimate, passFail(ev.TierParity.Passed), passFail(ev.Timeline.Aligned))
	fmt.Fprintf(w, "Window overlay %s (A receives %.1fy, B receives %.1fy)\n",
		ev.Overlay.Verdict, ev.Overlay.WindowA, ev.Overlay.WindowB)
	fmt.Fprintf(w, "Confidence %s (%.2f, %s)\n", ev.Confidence.Label, ev.Confidence.Score, ev.Confidence.Recency)

	if ev.Fix != nil {
		fmt.Fprintf(w, "\nSuggested fix: %s\n", ev.Fix.Message)
	}
	if len(ev.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, msg := range ev.Warnings {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
}

func renderPriced(w io.Writer, p asset.Priced) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Asset\t%s\n", p.Spec.Label())
	if p.ResolvedName != "" && p.ResolvedName != p.Spec.Name {
		fmt.Fprintf(tw, "Matched\t%s\n", p.ResolvedName)
	}
	fmt.Fprintf(tw, "Source\t%s\n", p.Source)
	if !p.SnapshotDate.IsZero() {
		fmt.Fprintf(tw, "Snapshot\t%s\n", p.SnapshotDate.Format("2006-01-02"))
	}
	fmt.Fprintf(tw, "Market value\t%.0f\n", p.MarketValue)
	fmt.Fprintf(tw, "Impact value\t%.0f\n", p.ImpactValue)
	fmt.Fprintf(tw, "VORP value\t%.0f\n", p.VorpValue)
	fmt.Fprintf(tw, "Volatility\t%.2f\n", p.Volatility)
	if p.ResolvedTier != nil {
		fmt.Fprintf(tw, "Tier\t%d (%s)\n", *p.ResolvedTier, p.TierSource)
	}
	tw.Flush()
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "FAIL"
}
