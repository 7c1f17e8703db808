package httpserver

import "net/http"

const uiIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <title>Chat Relay</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
    #chat-window { border: 1px solid #ccc; border-radius: 8px; height: 420px; overflow-y: auto; padding: 1rem; }
    .message { margin: 0.5rem 0; padding: 0.5rem 0.75rem; border-radius: 8px; white-space: pre-wrap; }
    .message.user { background: #e3f2fd; text-align: right; }
    .message.assistant { background: #f1f1f1; }
    form { display: flex; gap: 0.5rem; margin-top: 1rem; }
    input { flex: 1; padding: 0.5rem; }
    .actions { margin-top: 0.5rem; display: flex; gap: 0.5rem; }
  </style>
</head>
<body>
  <h1>Chat Relay</h1>
  <div id="chat-window"></div>
  <form id="chat-form">
    <input id="user-input" autocomplete="off" placeholder="Type a message" />
    <button type="submit">Send</button>
  </form>
  <div class="actions">
    <button id="new-chat-btn">New chat</button>
    <button id="delete-history-btn">Delete history</button>
  </div>
  <script>
    const chatWindow = document.getElementById('chat-window');
    const form = document.getElementById('chat-form');
    const input = document.getElementById('user-input');

    function append(role, text) {
      const div = document.createElement('div');
      div.classList.add('message', role);
      div.textContent = text;
      chatWindow.appendChild(div);
      chatWindow.scrollTop = chatWindow.scrollHeight;
    }

    async function loadHistory() {
      chatWindow.innerHTML = '';
      const res = await fetch('/api/history');
      const data = await res.json();
      for (const entry of data.history || []) append(entry.role, entry.message);
    }

    form.addEventListener('submit', async (e) => {
      e.preventDefault();
      const message = input.value.trim();
      if (!message) return;
      append('user', message);
      input.value = '';
      const res = await fetch('/api/chat', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify({ message }),
      });
      const data = await res.json();
      append('assistant', res.ok ? data.response : 'Error: ' + data.error);
    });

    document.getElementById('new-chat-btn').addEventListener('click', async () => {
      await fetch('/api/chat/new', { method: 'POST' });
      chatWindow.innerHTML = '';
    });

    document.getElementById('delete-history-btn').addEventListener('click', async () => {
      await fetch('/api/history/delete', { method: 'POST' });
      chatWindow.innerHTML = '';
    });

    loadHistory();
  </script>
</body>
</html>
`

func registerUI(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(uiIndexHTML))
	})
}
