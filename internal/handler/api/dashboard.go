package api

// dashboardHTML is the single-page dashboard served at /. It renders
// the forecast report from /api/forecast and refreshes over /ws.
const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>TrendCast</title>
<style>
body { font-family: monospace; background: #0d1117; color: #c9d1d9; margin: 2rem; }
h1 { color: #58a6ff; font-size: 1.3rem; }
pre { background: #161b22; padding: 1rem; border-radius: 6px; overflow-x: auto; }
#spark { font-size: 1.4rem; letter-spacing: 2px; color: #7ee787; }
label { margin-right: 1rem; }
input { width: 4rem; background: #161b22; color: #c9d1d9; border: 1px solid #30363d; }
button { background: #238636; color: #fff; border: 0; padding: 4px 12px; border-radius: 4px; cursor: pointer; }
.err { color: #f85149; }
.muted { color: #8b949e; }
</style>
</head>
<body>
<h1>TrendCast &mdash; moving-average forecast</h1>
<div>
  <label>window <input id="window" type="number" value="3" min="1"></label>
  <label>horizon <input id="horizon" type="number" value="6" min="0"></label>
  <label>history <input id="history" type="number" value="10" min="0"></label>
  <button onclick="refresh()">refresh</button>
  <span id="live" class="muted"></span>
</div>
<pre id="spark"></pre>
<pre id="report"></pre>
<pre id="logs" class="muted"></pre>
<script>
function q(id) { return document.getElementById(id); }

function show(r) {
  q('spark').textContent = r.sparkline || '';
  var lines = ['source: ' + r.source + '   window: ' + r.window + '   horizon: ' + r.horizon, '', 'Date        Actual    MA'];
  (r.history || []).forEach(function(h) {
    var ma = h.has_mean ? h.mean.toFixed(2) : '--';
    lines.push(h.date.slice(0, 10) + '  ' + h.actual.toFixed(2) + '  ' + ma);
  });
  if ((r.forecast || []).length) {
    lines.push('', 'Date        Prediction');
    r.forecast.forEach(function(f) {
      lines.push(f.date.slice(0, 10) + '  ' + f.prediction.toFixed(2));
    });
  }
  q('report').textContent = lines.join('\n');
}

function refresh() {
  var p = new URLSearchParams({window: q('window').value, horizon: q('horizon').value, history: q('history').value});
  fetch('/api/forecast?' + p).then(function(res) { return res.json(); }).then(function(body) {
    if (body.data) { show(body.data); } else { q('report').textContent = JSON.stringify(body, null, 2); }
  }).catch(function(e) { q('report').innerHTML = '<span class="err">' + e + '</span>'; });
  fetch('/api/logs').then(function(res) { return res.json(); }).then(function(body) {
    var entries = (body.data || []);
    q('logs').textContent = entries.map(function(e) {
      return e.level + '  x' + e.count + '  ' + e.message + '  (' + e.caller + ')';
    }).join('\n');
  });
}

var ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
ws.onmessage = function(ev) {
  q('live').textContent = 'live';
  try { show(JSON.parse(ev.data)); } catch (e) {}
};
ws.onclose = function() { q('live').textContent = ''; };

refresh();
</script>
</body>
</html>
`
