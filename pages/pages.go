package pages

var Index = `
<!DOCTYPE html>
<html>
<head>
    <title>Play Catalog Gateway</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
        }
        code {
            background: #f4f4f4;
            padding: 2px 4px;
        }
    </style>
</head>
<body>
    <h1>Play Catalog Gateway</h1>
    <p>Thin JSON proxy over the Google Play Store catalog.</p>
    <ul>
        <li><code>GET /api/search?query=term</code> search results</li>
        <li><code>GET /api/app/:id</code> app detail</li>
        <li><code>GET /api/reviews/:id</code> newest reviews</li>
        <li><code>GET /api/app-media?appId=id</code> screenshots, trailer and banner</li>
        <li><code>GET /health</code> liveness</li>
        <li><code>GET /metrics</code> Prometheus metrics</li>
    </ul>
    <p>Failures answer <code>500</code> with <code>{"error": "message"}</code>.</p>
</body>
</html>`
