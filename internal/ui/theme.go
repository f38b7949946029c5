package ui

const themeInitScript = `(function(){
  var root=document.documentElement;
  var media=window.matchMedia('(prefers-color-scheme: dark)');
  function normalize(mode){
    return mode==='light'||mode==='dark'||mode==='auto'?mode:'auto';
  }
  var stored='auto';
  try {
    stored=normalize(localStorage.getItem('docindex-theme')||'auto');
  } catch (_) {}
  var resolved=stored==='auto'?(media.matches?'dark':'light'):stored;
  root.setAttribute('data-color-mode',stored);
  root.setAttribute('data-theme',resolved);
})();`
