package live

// ClientScript keeps the page in sync with the server. It is injected into
// the page served on GET /.
const ClientScript = `
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var events = ['click', 'input', 'change', 'submit', 'keydown'];
    var ws = null;

    function root() {
        return document.getElementById('vhook-root');
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/ws');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }

            switch (msg.type) {
                case 'render':
                    patch(msg.html);
                    break;
                case 'error':
                    console.error('[vhook]', msg.code, msg.error);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    // patch replaces the tree, keeping focus and caret on the element that
    // had them when it survives under the same id.
    function patch(html) {
        var active = document.activeElement;
        var id = active && active.id;
        var caret = active && active.selectionStart;
        root().innerHTML = html;
        if (id) {
            var el = document.getElementById(id);
            if (el) {
                el.focus();
                if (caret != null && el.setSelectionRange) {
                    el.setSelectionRange(caret, caret);
                }
            }
        }
    }

    function send(type, e) {
        var target = e.target;
        var el = target.closest('[data-hid]');
        if (!el || !el.hasAttribute('data-on-' + type)) {
            return false;
        }
        if (!ws || ws.readyState !== WebSocket.OPEN) {
            return true;
        }
        var value = target.type === 'checkbox' ? String(target.checked) : (target.value || '');
        if (type === 'keydown') {
            value = e.key;
        }
        ws.send(JSON.stringify({hid: el.getAttribute('data-hid'), event: type, value: value}));
        return true;
    }

    events.forEach(function(type) {
        document.addEventListener(type, function(e) {
            if (send(type, e) && type === 'submit') {
                e.preventDefault();
            }
        }, true);
    });

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
`
