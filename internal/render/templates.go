package render

// HTML templates for the transaction page.
// These are embedded as strings and parsed at startup.

const layoutTemplate = `{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.View.Title}}{{if .View.Hash}} {{shortHash .View.Hash}}{{end}}</title>
    <style>
        body { font-family: system-ui, sans-serif; margin: 0; background: #f7fafc; color: #1a202c; }
        main { max-width: 1200px; margin: 0 auto; padding: 24px 16px; }
        .mono { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; }
        .ad { margin-bottom: 24px; padding: 8px 12px; background: #edf2f7; border-radius: 6px; font-size: 14px; }
        .title-bar { display: flex; flex-wrap: wrap; align-items: center; gap: 12px; }
        .title-bar h1 { margin: 0; font-size: 28px; }
        .back { font-size: 14px; }
        .tags { display: flex; flex-wrap: wrap; align-items: center; gap: 8px; flex: 1; }
        .tag { padding: 2px 8px; border-radius: 4px; background: #e2e8f0; font-size: 12px; }
        .explorers { margin-left: auto; display: flex; gap: 8px; font-size: 14px; }
        .tabs { display: flex; gap: 4px; margin-top: 24px; border-bottom: 1px solid #e2e8f0; }
        .tabs a { padding: 8px 12px; text-decoration: none; color: inherit; border-radius: 6px 6px 0 0; }
        .tabs a[aria-selected="true"] { background: #fff; font-weight: 600; }
        .tabs-skeleton { display: flex; gap: 4px; margin-top: 24px; }
        .skeleton { color: transparent; background: #e2e8f0; border-radius: 4px; animation: pulse 1.5s infinite; }
        .section { margin-top: 16px; background: #fff; border-radius: 8px; padding: 16px; }
        .section.loading dd, .section.loading td { color: transparent; background: #edf2f7; }
        dl { display: grid; grid-template-columns: 220px 1fr; gap: 8px 16px; margin: 0; }
        dt { color: #4a5568; }
        dd { margin: 0; word-break: break-all; }
        table { width: 100%; border-collapse: collapse; font-size: 14px; }
        th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #edf2f7; }
        pre { white-space: pre-wrap; word-break: break-all; }
        @keyframes pulse { 0%, 100% { opacity: 1; } 50% { opacity: 0.5; } }
    </style>
</head>
<body>
    <main id="tx-page"{{if and .View.Loading .StreamURL}} data-stream="{{.StreamURL}}"{{end}}>{{template "body" .}}</main>
    {{if and .View.Loading .StreamURL}}
    <script>
        (function () {
            var root = document.getElementById("tx-page");
            var source = new EventSource(root.dataset.stream);
            source.addEventListener("page", function (e) {
                root.innerHTML = e.data;
            });
            source.addEventListener("done", function () { source.close(); });
            source.onerror = function () { source.close(); };
        })();
    </script>
    {{end}}
</body>
</html>{{end}}`

const bodyTemplate = `{{define "body"}}{{with .View}}
{{if .Ad}}<div class="ad" data-provider="{{.Ad.Provider}}">Sponsored</div>{{end}}
<div class="title-bar">
    {{if .BackLink}}<a class="back" href="{{.BackLink.URL}}" title="{{.BackLink.Label}}">&larr; {{.BackLink.Label}}</a>{{end}}
    <h1>{{.Title}}</h1>
    {{template "tags" .Tags}}
</div>
{{if .Loading}}
<div class="tabs-skeleton" aria-busy="true">
    {{range .Tabs}}<span class="skeleton">{{.Title}}</span>{{end}}
</div>
{{else}}
<nav class="tabs" role="tablist">
    {{range .Tabs}}<a role="tab" href="{{.URL}}" aria-selected="{{.Active}}">{{.Title}}</a>{{end}}
</nav>
{{end}}
{{template "section" .Active}}
{{end}}{{end}}`

const tagsTemplate = `{{define "tags"}}<div class="tags">
    {{if .Loading}}<span class="tag skeleton">loading</span>{{else}}{{range .Tags}}<span class="tag" title="{{.Label}}">{{.DisplayName}}</span>{{end}}{{end}}
    {{if .Explorers}}<div class="explorers">
        {{if not .HideExplorerText}}<span>Verify with other explorers</span>{{end}}
        {{range .Explorers}}<a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.Title}}</a>{{end}}
    </div>{{end}}
</div>{{end}}`

const sectionTemplate = `{{define "section"}}<section class="section{{if .Loading}} loading{{end}}" data-kind="{{.Kind}}">
{{if eq .Kind "details"}}{{template "details" .Data}}
{{else if eq .Kind "wrapped"}}{{template "wrapped" .Data}}
{{else if eq .Kind "token_transfers"}}{{template "token_transfers" .Data}}
{{else if eq .Kind "internal"}}{{template "internal" .Data}}
{{else if eq .Kind "logs"}}{{template "logs" .Data}}
{{else if eq .Kind "state"}}{{template "state" .Data}}
{{else if eq .Kind "raw_trace"}}{{template "raw_trace" .Data}}
{{end}}
{{if .HasNextPage}}<p class="more">More results are available upstream.</p>{{end}}
</section>{{end}}`

const detailsTemplate = `{{define "address"}}{{if .}}<span class="mono">{{.Hash}}</span>{{if .Name}} ({{.Name}}){{end}}{{else}}&mdash;{{end}}{{end}}

{{define "details"}}<dl>
    <dt>Transaction hash</dt><dd class="mono">{{.Hash}}</dd>
    <dt>Status</dt><dd>{{if .Pending}}Pending{{else if eq .Status "ok"}}Success{{else if .Status}}Failed{{end}}{{if .Result}} ({{.Result}}){{end}}</dd>
    {{if .RevertReason}}<dt>Revert reason</dt><dd>{{printf "%v" .RevertReason}}</dd>{{end}}
    <dt>Block</dt><dd>{{if .Block}}{{deref .Block}}{{else}}Pending{{end}}</dd>
    <dt>Timestamp</dt><dd>{{if .Timestamp}}{{formatTime .Timestamp}}{{end}}{{if .Confirmations}} &middot; {{.Confirmations}} confirmations{{end}}</dd>
    {{if .ExecutionNode}}<dt>Kettle</dt><dd>{{template "address" .ExecutionNode}}</dd>{{end}}
    {{if .AllowedPeekers}}<dt>Allowed peekers</dt><dd class="mono">{{join .AllowedPeekers ", "}}</dd>{{end}}
    <dt>From</dt><dd>{{template "address" .From}}</dd>
    <dt>{{if .CreatedContract}}Contract creation{{else}}To{{end}}</dt><dd>{{if .CreatedContract}}{{template "address" .CreatedContract}}{{else}}{{template "address" .To}}{{end}}</dd>
    <dt>Value</dt><dd>{{.Value}} ETH</dd>
    <dt>Transaction fee</dt><dd>{{.Fee}} ETH</dd>
    <dt>Gas price</dt><dd>{{.GasPrice}} Gwei</dd>
    {{if .MaxFeePerGas}}<dt>Max fee per gas</dt><dd>{{.MaxFeePerGas}} Gwei</dd>{{end}}
    {{if .MaxPriorityFeePerGas}}<dt>Max priority fee per gas</dt><dd>{{.MaxPriorityFeePerGas}} Gwei</dd>{{end}}
    <dt>Gas usage &amp; limit</dt><dd>{{.GasUsed}} / {{.GasLimit}}</dd>
    <dt>Other</dt><dd>Txn type: {{.Type}} &middot; Nonce: {{.Nonce}} &middot; Position: {{.Position}}</dd>
    {{if .Method}}<dt>Method</dt><dd>{{.Method}}</dd>{{end}}
    <dt>Raw input</dt><dd class="mono">{{.RawInput}} <small>({{.Input.Size}} bytes{{if .Input.MethodID}}, method id {{.Input.MethodID}}{{end}})</small></dd>
    {{if .DecodedInput}}<dt>Decoded input</dt><dd>{{template "decoded" .DecodedInput}}</dd>{{end}}
</dl>{{end}}

{{define "decoded"}}<div class="mono">{{.MethodCall}}</div>
<table><thead><tr><th>Name</th><th>Type</th><th>Value</th></tr></thead><tbody>
{{range .Parameters}}<tr><td>{{.Name}}</td><td>{{.Type}}</td><td class="mono">{{printf "%v" .Value}}</td></tr>{{end}}
</tbody></table>{{end}}

{{define "wrapped"}}<dl>
    {{if .Hash}}<dt>Transaction hash</dt><dd class="mono">{{.Hash}}</dd>{{end}}
    <dt>Txn type</dt><dd>{{.Type}}</dd>
    <dt>Nonce</dt><dd>{{.Nonce}}</dd>
    <dt>To</dt><dd>{{template "address" .To}}</dd>
    <dt>Value</dt><dd>{{.Value}} ETH</dd>
    {{if .Fee}}<dt>Transaction fee</dt><dd>{{.Fee}} ETH</dd>{{end}}
    <dt>Gas price</dt><dd>{{.GasPrice}} Gwei</dd>
    <dt>Gas limit</dt><dd>{{.GasLimit}}</dd>
    {{if .MaxFeePerGas}}<dt>Max fee per gas</dt><dd>{{.MaxFeePerGas}} Gwei</dd>{{end}}
    {{if .MaxPriorityFeePerGas}}<dt>Max priority fee per gas</dt><dd>{{.MaxPriorityFeePerGas}} Gwei</dd>{{end}}
    {{if .Method}}<dt>Method</dt><dd>{{.Method}}</dd>{{end}}
    <dt>Raw input</dt><dd class="mono">{{.RawInput}} <small>({{.Input.Size}} bytes)</small></dd>
    {{if .DecodedInput}}<dt>Decoded input</dt><dd>{{template "decoded" .DecodedInput}}</dd>{{end}}
</dl>{{end}}`

const listTemplates = `{{define "empty"}}<p class="empty">{{.}}</p>{{end}}

{{define "token_transfers"}}{{if .Items}}<table>
<thead><tr><th>Token</th><th>Type</th><th>From</th><th>To</th><th>Amount</th></tr></thead><tbody>
{{range .Items}}<tr>
    <td>{{.Token.Name}} ({{.Token.Symbol}})</td>
    <td>{{.Token.Type}}</td>
    <td class="mono">{{checksum .From.Hash}}</td>
    <td class="mono">{{checksum .To.Hash}}</td>
    <td>{{if .Total.TokenID}}#{{.Total.TokenID}}{{else}}{{tokenAmount .Total.Value .Total.Decimals}}{{end}}</td>
</tr>{{end}}
</tbody></table>{{else}}{{template "empty" "There are no token transfers."}}{{end}}{{end}}

{{define "internal"}}{{if .Items}}<table>
<thead><tr><th>Type</th><th>From</th><th>To</th><th>Value</th><th>Gas limit</th><th>Result</th></tr></thead><tbody>
{{range .Items}}<tr>
    <td>{{.Type}}</td>
    <td class="mono">{{checksum .From.Hash}}</td>
    <td class="mono">{{if .CreatedContract}}{{checksum .CreatedContract.Hash}}{{else if .To}}{{checksum .To.Hash}}{{end}}</td>
    <td>{{ether .Value}} ETH</td>
    <td>{{.GasLimit}}</td>
    <td>{{if .Success}}Success{{else}}Failed{{if .Error}}: {{.Error}}{{end}}{{end}}</td>
</tr>{{end}}
</tbody></table>{{else}}{{template "empty" "There are no internal transactions for this transaction."}}{{end}}{{end}}

{{define "logs"}}{{if .Items}}{{range .Items}}<dl class="log">
    <dt>Address</dt><dd class="mono">{{checksum .Address.Hash}}{{if .Address.Name}} ({{.Address.Name}}){{end}}</dd>
    {{if .Decoded}}<dt>Decode input data</dt><dd>{{template "decoded" .Decoded}}</dd>{{end}}
    <dt>Topics</dt><dd class="mono">{{range $i, $t := .Topics}}{{if $t}}<div>[{{$i}}] {{deref $t}}</div>{{end}}{{end}}</dd>
    <dt>Data</dt><dd class="mono">{{.Data}}</dd>
</dl>{{end}}{{else}}{{template "empty" "There are no logs for this transaction."}}{{end}}{{end}}

{{define "state"}}{{if .Items}}<table>
<thead><tr><th>Type</th><th>Address</th><th>Before</th><th>After</th><th>Change</th></tr></thead><tbody>
{{range .Items}}<tr>
    <td>{{if .IsMiner}}Miner{{else}}{{.Type}}{{end}}{{if .Token}} {{.Token.Symbol}}{{end}}</td>
    <td class="mono">{{checksum .Address.Hash}}</td>
    <td>{{if eq .Type "coin"}}{{ether .BalanceBefore}}{{else}}{{.BalanceBefore}}{{end}}</td>
    <td>{{if eq .Type "coin"}}{{ether .BalanceAfter}}{{else}}{{.BalanceAfter}}{{end}}</td>
    <td>{{printf "%v" .Change}}</td>
</tr>{{end}}
</tbody></table>{{else}}{{template "empty" "There are no state changes for this transaction."}}{{end}}{{end}}

{{define "raw_trace"}}{{if .}}<pre class="mono">{{rawJSON .}}</pre>{{else}}{{template "empty" "No trace entries found."}}{{end}}{{end}}`
