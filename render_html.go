package main

import (
	"fmt"
	"html"
	"strings"
)

const htmlHead = `<!DOCTYPE html>
<html lang="%s">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Noto Sans', Helvetica, Arial, sans-serif;
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
            min-height: 100vh;
            padding: 40px 20px;
            display: flex;
            justify-content: center;
            align-items: center;
        }

        .container {
            background: white;
            border-radius: 16px;
            box-shadow: 0 20px 60px rgba(0, 0, 0, 0.3);
            padding: 40px;
            max-width: %dpx;
            animation: slideUp 0.6s ease-out;
        }

        @keyframes slideUp {
            from { opacity: 0; transform: translateY(30px); }
            to { opacity: 1; transform: translateY(0); }
        }

        h1 { color: #24292e; font-size: 24px; margin-bottom: 8px; }

        .stats {
            color: #586069;
            font-size: 13px;
            margin-bottom: 30px;
            display: flex;
            gap: 20px;
            flex-wrap: wrap;
        }

        .stat-item { display: flex; align-items: center; gap: 6px; }
        .stat-value { font-weight: 600; color: #24292e; }

        .heatmap-wrapper {
            background: #f6f8fa;
            border-radius: 8px;
            padding: 20px;
            overflow-x: auto;
        }

        .heatmap { position: relative; display: inline-block; }

        .months {
            position: relative;
            height: 14px;
            margin-bottom: 8px;
            margin-left: 38px;
        }

        .month { font-size: 10px; color: #767676; position: absolute; white-space: nowrap; }

        .days-and-grid { display: flex; }

        .days {
            display: flex;
            flex-direction: column;
            gap: %dpx;
            width: 30px;
            margin-right: 8px;
        }

        .day-label { font-size: 9px; color: #767676; height: %dpx; line-height: %dpx; }

        .grid { display: flex; gap: %dpx; }
        .week { display: flex; flex-direction: column; gap: %dpx; }

        .cell {
            width: %dpx;
            height: %dpx;
            border-radius: 2px;
            cursor: pointer;
            transition: all 0.2s ease;
            position: relative;
        }

        .cell:hover {
            outline: 2px solid rgba(0, 0, 0, 0.3);
            outline-offset: 1px;
            transform: scale(1.2);
            z-index: 10;
        }

        .tooltip {
            position: absolute;
            background: rgba(0, 0, 0, 0.9);
            color: white;
            padding: 8px 12px;
            border-radius: 6px;
            font-size: 12px;
            pointer-events: none;
            white-space: nowrap;
            z-index: 1000;
            display: none;
            box-shadow: 0 4px 12px rgba(0, 0, 0, 0.3);
        }

        .tooltip.show { display: block; }

        .legend {
            display: flex;
            align-items: center;
            gap: 8px;
            margin-top: 20px;
            font-size: 11px;
            color: #767676;
        }

        .legend-cells { display: flex; gap: %dpx; }
        .legend-cell { width: %dpx; height: %dpx; border-radius: 2px; }

        .footer { text-align: center; margin-top: 30px; color: #586069; font-size: 12px; }
    </style>
</head>
<body>
`

// htmlScript positions the tooltip. It reads every value from the DOM.
const htmlScript = `    <script>
        const cells = document.querySelectorAll('.cell[data-date]');
        const tooltip = document.getElementById('tooltip');
        const unit = tooltip.dataset.unit;

        function updateTooltipPosition(e) {
            tooltip.style.left = (e.pageX + 10) + 'px';
            tooltip.style.top = (e.pageY - 30) + 'px';
        }

        cells.forEach(function (cell) {
            cell.addEventListener('mouseenter', function (e) {
                tooltip.textContent = this.dataset.date + ': ' + this.dataset.count + ' ' + unit;
                tooltip.classList.add('show');
                updateTooltipPosition(e);
            });
            cell.addEventListener('mousemove', updateTooltipPosition);
            cell.addEventListener('mouseleave', function () {
                tooltip.classList.remove('show');
            });
        });
    </script>
`

// RenderHTML renders the heatmap as a self-contained page with a hover tooltip.
func RenderHTML(doc HeatmapDocument) string {
	loc := doc.Locale
	esc := html.EscapeString
	containerWidth := len(doc.Grid)*svgCellPitch + 60

	var b strings.Builder

	fmt.Fprintf(&b, htmlHead,
		esc(loc.Lang), esc(loc.Title(doc.Username)), containerWidth+100,
		svgCellSpacing, svgCellSize, svgCellSize,
		svgCellSpacing, svgCellSpacing,
		svgCellSize, svgCellSize,
		svgCellSpacing, svgCellSize, svgCellSize,
	)

	b.WriteString("    <div class=\"container\">\n")
	fmt.Fprintf(&b, "        <h1>%s</h1>\n", esc(loc.Title(doc.Username)))

	s := doc.Stats
	b.WriteString("        <div class=\"stats\">\n")
	writeStatItem(&b, "📊", esc(loc.TotalLabel), fmt.Sprint(s.Total), "")
	writeStatItem(&b, "📅", esc(loc.ActiveLabel), fmt.Sprintf("%d/%d", s.DaysWithContributions, s.TotalDays), "")
	writeStatItem(&b, "🔥", esc(loc.MaxLabel), fmt.Sprint(s.MaxCount), esc(loc.PerDay))
	writeStatItem(&b, "📈", esc(loc.AvgLabel), esc(s.AvgCount), esc(loc.PerDay))
	b.WriteString("        </div>\n\n")

	b.WriteString("        <div class=\"heatmap-wrapper\">\n")
	b.WriteString("            <div class=\"heatmap\">\n")

	b.WriteString("                <div class=\"months\">\n")
	for _, label := range doc.Months {
		fmt.Fprintf(&b, "                    <div class=\"month\" style=\"left: %dpx;\">%s</div>\n",
			label.WeekIndex*svgCellPitch, esc(label.Name))
	}
	b.WriteString("                </div>\n\n")

	b.WriteString("                <div class=\"days-and-grid\">\n")
	b.WriteString("                    <div class=\"days\">\n")
	for _, label := range loc.DayLabels {
		fmt.Fprintf(&b, "                        <div class=\"day-label\">%s</div>\n", esc(label))
	}
	b.WriteString("                    </div>\n\n")

	b.WriteString("                    <div class=\"grid\">\n")
	for _, week := range doc.Grid {
		b.WriteString("                        <div class=\"week\">\n")
		// One slot per weekday row; days missing from a short week stay transparent.
		var slots [daysPerWeek]*ContributionDay
		for i := range week {
			slots[week[i].Weekday] = &week[i]
		}
		for _, day := range slots {
			if day == nil {
				b.WriteString("                            <div class=\"cell\" style=\"background: transparent;\"></div>\n")
				continue
			}
			fmt.Fprintf(&b, "                            <div class=\"cell\" style=\"background: %s;\" data-date=\"%s\" data-count=\"%d\"></div>\n",
				doc.Palette.Color(day.Level), day.Date, day.Count)
		}
		b.WriteString("                        </div>\n")
	}
	b.WriteString("                    </div>\n")
	b.WriteString("                </div>\n\n")

	b.WriteString("                <div class=\"legend\">\n")
	fmt.Fprintf(&b, "                    <span>%s</span>\n", esc(loc.Less))
	b.WriteString("                    <div class=\"legend-cells\">\n")
	for level := 0; level < levelCount; level++ {
		fmt.Fprintf(&b, "                        <div class=\"legend-cell\" style=\"background: %s;\"></div>\n", doc.Palette.Color(level))
	}
	b.WriteString("                    </div>\n")
	fmt.Fprintf(&b, "                    <span>%s</span>\n", esc(loc.More))
	b.WriteString("                </div>\n")
	b.WriteString("            </div>\n")
	b.WriteString("        </div>\n\n")

	fmt.Fprintf(&b, "        <div class=\"footer\">%s</div>\n", esc(loc.Footer))
	b.WriteString("    </div>\n\n")

	fmt.Fprintf(&b, "    <div class=\"tooltip\" id=\"tooltip\" data-unit=\"%s\"></div>\n\n", esc(loc.Unit))
	b.WriteString(htmlScript)
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

// writeStatItem writes one icon + label + value entry of the stats bar.
// All arguments must already be escaped.
func writeStatItem(b *strings.Builder, icon, label, value, suffix string) {
	b.WriteString("            <div class=\"stat-item\">\n")
	fmt.Fprintf(b, "                <span>%s</span>\n", icon)
	fmt.Fprintf(b, "                <span>%s: <span class=\"stat-value\">%s</span>%s</span>\n", label, value, suffix)
	b.WriteString("            </div>\n")
}
