package leads

const leadsPageHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Lead Manager</title>
  <style>
    :root {
      color-scheme: light;
      --bg: #f4f6f8;
      --panel: #ffffff;
      --ink: #1f2933;
      --muted: #616e7c;
      --accent: #2f6fed;
      --danger: #c53030;
      --border: #d9e2ec;
    }
    body {
      font-family: "Inter", "Helvetica Neue", sans-serif;
      margin: 0;
      padding: 32px;
      background: var(--bg);
      color: var(--ink);
    }
    .wrap { max-width: 1100px; margin: 0 auto; }
    .panel {
      background: var(--panel);
      border: 1px solid var(--border);
      border-radius: 12px;
      padding: 20px;
      margin-bottom: 20px;
    }
    .stats { display: flex; gap: 16px; }
    .stat { flex: 1; }
    .stat b { display: block; font-size: 24px; }
    label { display: block; font-size: 13px; color: var(--muted); margin-top: 10px; }
    input, select {
      width: 100%;
      padding: 8px;
      border: 1px solid var(--border);
      border-radius: 8px;
      box-sizing: border-box;
    }
    .field-error { color: var(--danger); font-size: 12px; min-height: 14px; }
    .row { display: flex; gap: 12px; }
    .row > * { flex: 1; }
    button {
      border: none;
      border-radius: 8px;
      padding: 8px 14px;
      font-weight: 600;
      cursor: pointer;
      background: var(--accent);
      color: white;
      margin-top: 12px;
    }
    button.danger { background: var(--danger); margin: 0; }
    table { width: 100%; border-collapse: collapse; }
    th, td { text-align: left; padding: 8px; border-bottom: 1px solid var(--border); font-size: 14px; }
    th { cursor: pointer; user-select: none; }
    .toast { min-height: 18px; font-size: 14px; }
    .toast.error { color: var(--danger); }
  </style>
</head>
<body>
  <div class="wrap">
    <h1>Lead Manager</h1>
    <div class="panel stats">
      <div class="stat">Total leads<b id="stat-total">0</b></div>
      <div class="stat">This month<b id="stat-month">0</b></div>
      <div class="stat">Conversion rate<b id="stat-rate">0%</b></div>
    </div>
    <div class="panel">
      <h2>New lead</h2>
      <form id="lead-form" novalidate>
        <div class="row">
          <div><label for="name">Name</label><input id="name" /><div class="field-error" data-for="name"></div></div>
          <div><label for="email">Email</label><input id="email" type="email" /><div class="field-error" data-for="email"></div></div>
        </div>
        <div class="row">
          <div><label for="phone">Phone</label><input id="phone" /><div class="field-error" data-for="phone"></div></div>
          <div><label for="leadsource">Lead source</label><input id="leadsource" list="suggested" /><div class="field-error" data-for="leadsource"></div></div>
        </div>
        <datalist id="suggested"></datalist>
        <button type="submit" id="submit">Create lead</button>
      </form>
    </div>
    <div class="panel">
      <div class="row">
        <input id="search" placeholder="Search name, email or phone" />
        <select id="source"><option value="">All sources</option></select>
        <button type="button" id="refresh" style="flex:0;margin:0">Refresh</button>
      </div>
      <div class="toast" id="toast"></div>
      <table>
        <thead>
          <tr>
            <th data-sort="name">Name</th>
            <th data-sort="email">Email</th>
            <th>Phone</th>
            <th data-sort="leadsource">Source</th>
            <th data-sort="createdat">Created</th>
            <th></th>
          </tr>
        </thead>
        <tbody id="rows"></tbody>
      </table>
      <div id="count"></div>
    </div>
  </div>
  <script>
    const state = { sort: "createdat", order: "desc" };
    const toast = document.getElementById("toast");
    const fields = ["name", "email", "phone", "leadsource"];

    function headers(extra) {
      const h = Object.assign({}, extra || {});
      const token = localStorage.getItem("leadManagerToken");
      if (token) h["Authorization"] = "Bearer " + token;
      return h;
    }
    function notify(msg, isError) {
      toast.textContent = msg || "";
      toast.className = isError ? "toast error" : "toast";
    }
    function formatPhone(raw) {
      const digits = (raw || "").replace(/\D/g, "");
      if (digits.length === 10) return "(" + digits.slice(0, 3) + ") " + digits.slice(3, 6) + "-" + digits.slice(6);
      return raw;
    }
    function text(value) {
      const span = document.createElement("span");
      span.textContent = value;
      return span.innerHTML;
    }

    async function load(toggle) {
      const params = new URLSearchParams({
        search: document.getElementById("search").value,
        source: document.getElementById("source").value,
        sort: state.sort,
        order: state.order
      });
      if (toggle) params.set("toggle", toggle);
      const resp = await fetch("/api/leads?" + params.toString(), { headers: headers() });
      const data = await resp.json();
      if (!resp.ok) { notify(data.error, true); return; }
      render(data);
    }

    function render(data) {
      state.sort = data.sort.field;
      state.order = data.sort.order;
      const select = document.getElementById("source");
      const current = select.value;
      select.innerHTML = '<option value="">All sources</option>' +
        data.sources.map(s => '<option>' + text(s) + '</option>').join("");
      select.value = current;
      document.getElementById("rows").innerHTML = data.leads.map(l =>
        "<tr><td>" + text(l.name) + "</td><td>" + text(l.email) + "</td><td>" + text(formatPhone(l.phone)) +
        "</td><td>" + text(l.leadsource) + "</td><td>" + new Date(l.createdat).toLocaleDateString() +
        '</td><td><button class="danger" data-id="' + text(l.id) + '">Delete</button></td></tr>'
      ).join("");
      document.getElementById("count").textContent = data.count + " of " + data.total + " leads";
      document.getElementById("stat-total").textContent = data.stats.total;
      document.getElementById("stat-month").textContent = data.stats.this_month;
      document.getElementById("stat-rate").textContent = data.stats.conversion_rate + "%";
    }

    async function loadSources() {
      const resp = await fetch("/api/lead-sources", { headers: headers() });
      if (!resp.ok) return;
      const data = await resp.json();
      document.getElementById("suggested").innerHTML =
        data.suggested.map(s => '<option value="' + text(s) + '"></option>').join("");
    }

    document.getElementById("lead-form").addEventListener("submit", async (ev) => {
      ev.preventDefault();
      const submit = document.getElementById("submit");
      const body = {};
      fields.forEach(f => body[f] = document.getElementById(f).value);
      document.querySelectorAll(".field-error").forEach(el => el.textContent = "");
      submit.disabled = true;
      submit.textContent = "Creating...";
      try {
        const resp = await fetch("/api/leads", {
          method: "POST",
          headers: headers({ "Content-Type": "application/json" }),
          body: JSON.stringify(body)
        });
        const data = await resp.json();
        if (resp.status === 422) {
          Object.entries(data.errors || {}).forEach(([f, msg]) => {
            const el = document.querySelector('.field-error[data-for="' + f + '"]');
            if (el) el.textContent = msg;
          });
          return;
        }
        if (!resp.ok) { notify(data.error, true); return; }
        fields.forEach(f => document.getElementById(f).value = "");
        notify(data.message, false);
        load();
      } finally {
        submit.disabled = false;
        submit.textContent = "Create lead";
      }
    });

    document.getElementById("rows").addEventListener("click", async (ev) => {
      const id = ev.target.getAttribute("data-id");
      if (!id || !confirm("Delete this lead?")) return;
      const resp = await fetch("/api/leads/" + encodeURIComponent(id), { method: "DELETE", headers: headers() });
      const data = await resp.json();
      notify(resp.ok ? data.message : data.error, !resp.ok);
      if (resp.ok) load();
    });

    document.querySelectorAll("th[data-sort]").forEach(th =>
      th.addEventListener("click", () => load(th.getAttribute("data-sort"))));
    document.getElementById("search").addEventListener("input", () => load());
    document.getElementById("source").addEventListener("change", () => load());
    document.getElementById("refresh").addEventListener("click", async () => {
      const resp = await fetch("/api/leads/refresh", { method: "POST", headers: headers() });
      const data = await resp.json();
      if (!resp.ok) { notify(data.error, true); return; }
      load();
    });

    loadSources();
    load();
  </script>
</body>
</html>`
