package dashboard

import (
	"html/template"
	"io"
)

// SensorOption is one entry of the sensor dropdown.
type SensorOption struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"-"`
}

// PageData feeds pageTemplate.
type PageData struct {
	Title         string
	Sensors       []SensorOption
	Update        Update
	WebsocketPath string
	APIPrefix     string // figures are fetched from APIPrefix + id + "/figures"
}

// SensorOptions builds the dropdown entries for ids, marking selected.
func SensorOptions(ids []string, selected string) []SensorOption {
	opts := make([]SensorOption, len(ids))
	for i, id := range ids {
		opts[i] = SensorOption{Label: Header(id), Value: id, Selected: id == selected}
	}
	return opts
}

// RenderPage writes the dashboard HTML for data to w.
func RenderPage(w io.Writer, data PageData) error {
	return pageTemplate.Execute(w, data)
}

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <script src="https://unpkg.com/chart.js@3.7.1/dist/chart.min.js" integrity="sha384-7NrRHqlWUj2hJl3a/dZj/a1GxuQc56mJ3aYsEnydBYrY1jR+RSt6SBvK3sHfj+mJ" crossorigin="anonymous" referrerpolicy="no-referrer"></script>
    <style>
        body { font-family: sans-serif; background: #fff; color: #222; }
        h1, h4 { text-align: center; }
        #sensor-dropdown { display: block; width: 50%; margin: auto; padding: 4px; }
        .graphs { display: flex; flex-direction: column; align-items: flex-start; }
        .chart-container { width: 100%; max-width: 900px; margin: 1em 0; }
    </style>
</head>
<body>
<h1>{{.Title}}</h1>
<h4 id="sensor-header">{{.Update.Header}}</h4>
<select id="sensor-dropdown">
{{- range .Sensors}}
    <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
</select>
<div class="graphs">
{{- range .Update.Figures}}
    <div class="chart-container"><canvas id="{{.ID}}"></canvas></div>
{{- end}}
</div>
<script>
const initialUpdate = {{.Update}};
const websocketPath = {{.WebsocketPath}};
const apiPrefix = {{.APIPrefix}};
const charts = {};
let socket = null;

function fmtDate(ms) {
    return new Date(ms).toISOString().slice(0, 10);
}

function chartSpec(fig) {
    return {
        type: 'scatter',
        data: {
            datasets: [{
                label: fig.yLabel,
                data: fig.points,
                backgroundColor: '#1f77b4',
                borderColor: '#1f77b4',
                pointRadius: 4
            }, {
                label: fig.lineName,
                data: fig.line,
                showLine: true,
                fill: false,
                backgroundColor: '#ff7f0e',
                borderColor: '#ff7f0e',
                pointRadius: 0
            }]
        },
        options: {
            aspectRatio: 2.5,
            scales: {
                x: {
                    type: 'linear',
                    beginAtZero: false,
                    title: { text: fig.xLabel, display: true },
                    ticks: { callback: function(v) { return fmtDate(v); } }
                },
                y: {
                    title: { text: fig.yLabel, display: true }
                }
            },
            plugins: {
                title: { text: fig.title, display: true, font: { size: 18 } },
                tooltip: {
                    callbacks: {
                        label: function(ctx) {
                            return ctx.dataset.label + " (" + fmtDate(ctx.parsed.x) + ", " + ctx.parsed.y + ")";
                        }
                    }
                },
                legend: { display: true }
            }
        }
    };
}

function render(update) {
    document.getElementById('sensor-header').textContent = update.header;
    update.figures.forEach(function(fig) {
        if (charts[fig.id]) {
            charts[fig.id].destroy();
        }
        charts[fig.id] = new Chart(document.getElementById(fig.id), chartSpec(fig));
    });
}

function connect() {
    const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    const ws = new WebSocket(proto + '//' + location.host + websocketPath);
    ws.onopen = function() { socket = ws; };
    ws.onmessage = function(ev) {
        const msg = JSON.parse(ev.data);
        if (msg.type === 'figures') {
            render(msg);
        }
    };
    ws.onclose = function() {
        socket = null;
        setTimeout(connect, 2000);
    };
}

function selectSensor(id) {
    if (socket && socket.readyState === WebSocket.OPEN) {
        socket.send(JSON.stringify({ type: 'select', sensorId: id }));
        return;
    }
    fetch(apiPrefix + encodeURIComponent(id) + '/figures')
        .then(function(r) { return r.json(); })
        .then(render);
}

document.getElementById('sensor-dropdown').addEventListener('change', function(ev) {
    selectSensor(ev.target.value);
});
render(initialUpdate);
connect();
</script>
</body>
</html>
`))
