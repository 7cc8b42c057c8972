// Package report renders the human-readable summary printed after a build.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gookit/color"

	"github.com/oshokin/dashboard-builder/internal/domain/build"
)

// ruleWidth is the width of the horizontal rules framing the report.
const ruleWidth = 80

// Render writes the report for result to w.
func Render(w io.Writer, result *build.Result) error {
	var builder strings.Builder

	rule := strings.Repeat("=", ruleWidth)

	builder.WriteString("\n" + rule + "\n")
	builder.WriteString("📦 DASHBOARD BUILD TEST REPORT\n")
	builder.WriteString(rule + "\n")

	success := result.Success()
	if success {
		builder.WriteString("Overall Status: " + color.Success.Sprint("✅ SUCCESS") + "\n")
	} else {
		builder.WriteString("Overall Status: " + color.Danger.Sprint("❌ FAILED") + "\n")
	}

	writeEnvironment(&builder, result.Status)
	writeStages(&builder, result)

	if success {
		writeDeliverables(&builder)
	} else {
		builder.WriteString("\n" + color.Danger.Sprint("❌ Build failed. Check logs and dependencies.") + "\n")
	}

	builder.WriteString(rule + "\n")

	_, err := io.WriteString(w, builder.String())

	return err
}

func writeEnvironment(builder *strings.Builder, status *build.Status) {
	builder.WriteString("\nEnvironment:\n")

	if status == nil {
		status = build.NewStatus(build.DefaultTools())
	}

	for _, entry := range status.Entries() {
		fmt.Fprintf(builder, "  %s: %s\n", entry.Label, entry.Version)
	}
}

func writeStages(builder *strings.Builder, result *build.Result) {
	if len(result.Stages) == 0 {
		return
	}

	builder.WriteString("\nStages:\n")

	for _, stage := range result.Stages {
		elapsed := stage.Duration.Round(time.Millisecond)

		if stage.Err != nil {
			fmt.Fprintf(builder, "  %s %s (%s): %v\n", color.Danger.Sprint("❌"), stage.Stage, elapsed, stage.Err)
			continue
		}

		fmt.Fprintf(builder, "  %s %s (%s)\n", color.Success.Sprint("✅"), stage.Stage, elapsed)
	}

	if result.Changes != nil || stageRan(result, build.StagePatch) {
		fmt.Fprintf(builder, "  Pinned dependencies: %d\n", len(result.Changes))
	}
}

func writeDeliverables(builder *strings.Builder) {
	builder.WriteString("\n" + color.Success.Sprint("✅ Deliverables Created:") + "\n")
	builder.WriteString("  📁 " + build.StagingDirName + "/ - Lightweight dashboard build\n")
	builder.WriteString("  📦 " + build.PackageDirName + "/ - Ready-to-install Linux package\n")
	builder.WriteString("  🚀 install.sh - Automated installation script\n")
	builder.WriteString("  📄 README.md - Installation instructions\n")

	builder.WriteString("\n🎯 Next Steps:\n")
	builder.WriteString("  1. Test the Linux package on target systems\n")
	builder.WriteString("  2. Package as AppImage or DEB (optional)\n")
	builder.WriteString("  3. Integrate with full build pipeline\n")
	builder.WriteString("  4. Deploy with AI Scraper VM and FrankensteinDB\n")
}

func stageRan(result *build.Result, name string) bool {
	for _, stage := range result.Stages {
		if stage.Stage == name && stage.Err == nil {
			return true
		}
	}

	return false
}
