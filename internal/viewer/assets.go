package viewer

const viewerStyles = `:root {
  --primary-color: #3f83f8;
  --primary-hover: #2c64dd;
  --background-color: #f9fafb;
  --secondary-bg: #ffffff;
  --text-color: #111827;
  --secondary-text: #4b5563;
  --border-color: #e5e7eb;
  --shadow-color: rgba(0,0,0,0.1);
  --code-bg: #f3f4f6;
}
.dark-mode {
  --primary-color: #4f83cc;
  --primary-hover: #3b6ebd;
  --background-color: #111827;
  --secondary-bg: #1f2937;
  --text-color: #f9fafb;
  --secondary-text: #d1d5db;
  --border-color: #374151;
  --shadow-color: rgba(0,0,0,0.5);
  --code-bg: #2d3748;
}
* { box-sizing: border-box; margin: 0; padding: 0; transition: background-color 0.3s, color 0.3s; }
body {
  display: flex; flex-direction: column; min-height: 100vh;
  background: var(--background-color); color: var(--text-color);
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', sans-serif;
}
header { background: var(--secondary-bg); padding: 1rem; box-shadow: 0 2px 8px var(--shadow-color); }
.navbar { display: flex; justify-content: space-between; align-items: center; max-width: 1400px; margin: 0 auto; }
.title { font-size: 1.5rem; font-weight: bold; display: flex; gap: 0.5rem; align-items: center; }
.logo { color: var(--primary-color); }
.right-nav { display: flex; gap: 1rem; align-items: center; }
.theme-toggle { background: none; border: none; font-size: 1.2rem; color: var(--text-color); cursor: pointer; padding: 0.5rem; border-radius: 50%; }
.theme-toggle:hover { background: var(--border-color); }
.info-button { background: var(--primary-color); color: #fff; border: none; padding: 0.5rem 1rem; border-radius: 0.25rem; cursor: pointer; font-weight: 500; }
.info-button:hover { background: var(--primary-hover); }
.main-container { flex: 1; display: flex; flex-direction: column; max-width: 1400px; width: 100%; margin: 0 auto; padding: 1rem; }
.view-options { display: flex; gap: 1rem; margin-bottom: 1rem; }
.view-tab { padding: 0.5rem 1rem; background: var(--secondary-bg); border: 1px solid var(--border-color); border-radius: 0.25rem; cursor: pointer; font-weight: 500; }
.view-tab.active { background: var(--primary-color); color: #fff; border-color: var(--primary-color); }
.visualization-container { display: flex; flex-direction: column; gap: 1rem; margin-bottom: 1rem; }
.image-wrapper { position: relative; width: 100%; background: var(--secondary-bg); border: 1px solid var(--border-color); border-radius: 0.5rem; overflow: hidden; box-shadow: 0 4px 6px var(--shadow-color); }
.image-container { position: relative; }
.image-container img { display: block; width: 100%; height: auto; }
.key-hint { position: absolute; bottom: 0.5rem; right: 0.5rem; font-size: 0.75rem; color: var(--secondary-text); background: var(--secondary-bg); padding: 0.25rem 0.5rem; border-radius: 0.25rem; opacity: 0.8; }
.single-view, .side-by-side-view, .comparison-view { display: none; }
.single-view.active-view, .comparison-view.active-view { display: block; }
.side-by-side-view.active-view { display: flex; flex-wrap: wrap; gap: 1rem; }
.image-half { flex: 1; min-width: 300px; }
.comparison-slider { position: relative; width: 100%; overflow: hidden; cursor: ew-resize; }
.comparison-slider img { display: block; width: 100%; height: auto; }
.img-overlay { position: absolute; top: 0; left: 0; height: 100%; width: 50%; overflow: hidden; border-right: 2px solid #fff; }
.img-overlay img { width: auto; height: 100%; max-width: none; }
.slider-handle { position: absolute; top: 0; left: 50%; width: 4px; height: 100%; margin-left: -2px; background: var(--primary-color); cursor: ew-resize; }
.info-panel { background: var(--secondary-bg); border: 1px solid var(--border-color); border-radius: 0.5rem; padding: 1rem; margin-bottom: 1rem; box-shadow: 0 4px 6px var(--shadow-color); }
.info-title { font-size: 1.25rem; font-weight: bold; margin-bottom: 0.75rem; }
.info-section { margin-bottom: 0.75rem; }
.info-section h3 { font-size: 1rem; margin-bottom: 0.25rem; }
.info-section p { color: var(--secondary-text); line-height: 1.5; }
.tech-details { background: var(--code-bg); border-radius: 0.25rem; padding: 0.75rem; }
.tech-details h4 { font-size: 0.9rem; margin-bottom: 0.25rem; }
.controls { background: var(--secondary-bg); border: 1px solid var(--border-color); border-radius: 0.5rem; padding: 1rem; display: flex; flex-direction: column; gap: 1rem; }
.playback-controls { display: flex; align-items: center; gap: 0.5rem; justify-content: center; }
.playback-controls button { background: var(--secondary-bg); border: 1px solid var(--border-color); color: var(--text-color); width: 2.5rem; height: 2.5rem; border-radius: 50%; cursor: pointer; }
.playback-controls button:disabled { opacity: 0.4; cursor: default; }
.play-button { background: var(--primary-color) !important; color: #fff !important; width: 3rem !important; height: 3rem !important; }
.counter { margin-left: 1rem; font-variant-numeric: tabular-nums; color: var(--secondary-text); }
.settings-controls { display: flex; gap: 1.5rem; flex-wrap: wrap; justify-content: center; align-items: center; }
.slider-container, .checkbox-container { display: flex; gap: 0.5rem; align-items: center; }
.progress-outer { width: 100%; height: 0.5rem; background: var(--border-color); border-radius: 0.25rem; overflow: hidden; }
.progress-inner { height: 100%; width: 0; background: var(--primary-color); transition: width 0.2s; }
.modal { display: none; position: fixed; inset: 0; background: rgba(0,0,0,0.6); align-items: center; justify-content: center; z-index: 100; }
.modal-content { background: var(--secondary-bg); max-width: 800px; max-height: 85vh; overflow-y: auto; padding: 2rem; border-radius: 0.5rem; position: relative; }
.modal-content h1 { margin-bottom: 1rem; }
.modal-content h2 { margin: 1.25rem 0 0.5rem; font-size: 1.2rem; }
.modal-content p, .modal-content li { line-height: 1.6; color: var(--secondary-text); }
.modal-content ul { padding-left: 1.5rem; }
.close-modal { position: absolute; top: 1rem; right: 1.25rem; font-size: 1.5rem; cursor: pointer; }
.code-block { background: var(--code-bg); border-radius: 0.25rem; padding: 1rem; }
.algorithm-step { display: flex; gap: 0.5rem; margin-bottom: 0.25rem; }
.step-number { font-weight: bold; color: var(--primary-color); }
`

const viewerScript = `(function () {
  const config = JSON.parse(document.getElementById("viewer-config").textContent);
  const last = config.totalFrames;

  const state = {
    currentFrame: 0,
    isPlaying: false,
    playInterval: null,
    playSpeed: 300,
    isLooping: true,
    isPingPong: false,
    direction: 1,
    comparePosition: 50
  };

  const $ = (id) => document.getElementById(id);
  const el = {
    currentFrame: $("currentFrame"),
    beforeFrame: $("beforeFrame"),
    afterFrame: $("afterFrame"),
    comparisonBase: $("comparisonBase"),
    comparisonOverlay: $("comparisonOverlay"),
    imgOverlay: $("imgOverlay"),
    sliderHandle: $("sliderHandle"),
    comparisonSlider: $("comparisonSlider"),
    viewTabs: document.querySelectorAll(".view-tab"),
    singleView: document.querySelector(".single-view"),
    sideBySideView: document.querySelector(".side-by-side-view"),
    comparisonView: document.querySelector(".comparison-view"),
    playButton: $("playButton"),
    playIcon: $("playIcon"),
    prevButton: $("prevButton"),
    nextButton: $("nextButton"),
    firstButton: $("firstButton"),
    lastButton: $("lastButton"),
    currentStep: $("currentStep"),
    totalSteps: $("totalSteps"),
    progressBar: $("progressBar"),
    speedSlider: $("speedSlider"),
    speedValue: $("speedValue"),
    loopToggle: $("loopToggle"),
    pingpongToggle: $("pingpongToggle"),
    frameTitle: $("frameTitle"),
    frameDescription: $("frameDescription"),
    technicalDetails: $("technicalDetails"),
    themeToggle: $("themeToggle"),
    infoButton: $("showInfo"),
    infoModal: $("infoModal"),
    closeModal: $("closeModal")
  };

  function frameSrc(i) {
    if (i >= last) {
      return config.combinedImagePath;
    }
    return config.imagePrefix + String(i).padStart(config.fileDigits, "0") + config.imageExtension;
  }

  function stop() {
    state.isPlaying = false;
    clearInterval(state.playInterval);
    el.playIcon.innerHTML = "&#9654;";
  }

  function togglePlay() {
    if (state.isPlaying) {
      stop();
      return;
    }
    state.isPlaying = true;
    el.playIcon.innerHTML = "&#10074;&#10074;";
    state.playInterval = setInterval(advanceFrame, state.playSpeed);
  }

  function goTo(i) {
    stop();
    state.currentFrame = Math.max(0, Math.min(last, i));
    updateFrame();
  }

  function advanceFrame() {
    if (state.isPingPong) {
      if (state.currentFrame >= last && state.direction === 1) {
        state.direction = -1;
      } else if (state.currentFrame <= 0 && state.direction === -1) {
        state.direction = 1;
      }
      state.currentFrame += state.direction;
    } else {
      state.currentFrame++;
      if (state.currentFrame > last) {
        if (state.isLooping) {
          state.currentFrame = 0;
        } else {
          state.currentFrame = last;
          stop();
        }
      }
    }
    updateFrame();
  }

  function updateFrame() {
    const src = frameSrc(state.currentFrame);
    el.currentFrame.src = src;
    el.comparisonBase.src = src;
    el.beforeFrame.src = frameSrc(0);
    el.afterFrame.src = config.combinedImagePath;
    el.comparisonOverlay.src = config.combinedImagePath;

    el.currentStep.textContent = state.currentFrame + 1;
    el.progressBar.style.width = (state.currentFrame / last * 100) + "%";

    const info = config.descriptions[state.currentFrame];
    if (info) {
      el.frameTitle.textContent = info.title;
      el.frameDescription.textContent = info.text;
      el.technicalDetails.textContent = info.technical;
    }

    el.prevButton.disabled = state.currentFrame === 0;
    el.firstButton.disabled = state.currentFrame === 0;
    el.nextButton.disabled = state.currentFrame === last;
    el.lastButton.disabled = state.currentFrame === last;
  }

  function updateSpeed() {
    state.playSpeed = parseInt(el.speedSlider.value, 10);
    el.speedValue.textContent = state.playSpeed + "ms";
    if (state.isPlaying) {
      clearInterval(state.playInterval);
      state.playInterval = setInterval(advanceFrame, state.playSpeed);
    }
  }

  function toggleTheme() {
    document.body.classList.toggle("dark-mode");
    el.themeToggle.innerHTML = document.body.classList.contains("dark-mode") ? "&#9728;" : "&#9790;";
  }

  function setComparePosition(pct) {
    state.comparePosition = Math.max(0, Math.min(100, pct));
    el.imgOverlay.style.width = state.comparePosition + "%";
    el.sliderHandle.style.left = state.comparePosition + "%";
  }

  function setupComparisonSlider() {
    let dragging = false;
    const pos = (x) => (x - el.comparisonSlider.getBoundingClientRect().left) / el.comparisonSlider.offsetWidth * 100;
    const move = (e) => {
      if (!dragging) return;
      const x = e.touches ? e.touches[0].clientX : e.clientX;
      setComparePosition(pos(x));
    };
    const start = (e) => { dragging = true; move(e); };
    const end = () => { dragging = false; };

    el.sliderHandle.addEventListener("mousedown", start);
    el.sliderHandle.addEventListener("touchstart", start);
    document.addEventListener("mousemove", move);
    document.addEventListener("touchmove", move);
    document.addEventListener("mouseup", end);
    document.addEventListener("touchend", end);
    el.comparisonSlider.addEventListener("click", (e) => {
      if (e.target !== el.sliderHandle) setComparePosition(pos(e.clientX));
    });
    setComparePosition(state.comparePosition);
  }

  el.viewTabs.forEach((tab) => {
    tab.addEventListener("click", () => {
      el.viewTabs.forEach((t) => t.classList.remove("active"));
      tab.classList.add("active");
      [el.singleView, el.sideBySideView, el.comparisonView].forEach((v) => v.classList.remove("active-view"));
      const view = tab.dataset.view;
      if (view === "single") el.singleView.classList.add("active-view");
      if (view === "side-by-side") el.sideBySideView.classList.add("active-view");
      if (view === "comparison") el.comparisonView.classList.add("active-view");
    });
  });

  el.playButton.addEventListener("click", togglePlay);
  el.prevButton.addEventListener("click", () => goTo(state.currentFrame - 1));
  el.nextButton.addEventListener("click", () => goTo(state.currentFrame + 1));
  el.firstButton.addEventListener("click", () => goTo(0));
  el.lastButton.addEventListener("click", () => goTo(last));
  el.speedSlider.addEventListener("input", updateSpeed);
  el.loopToggle.addEventListener("change", () => { state.isLooping = el.loopToggle.checked; });
  el.pingpongToggle.addEventListener("change", () => { state.isPingPong = el.pingpongToggle.checked; });
  el.themeToggle.addEventListener("click", toggleTheme);
  el.infoButton.addEventListener("click", () => { el.infoModal.style.display = "flex"; });
  el.closeModal.addEventListener("click", () => { el.infoModal.style.display = "none"; });
  el.infoModal.addEventListener("click", (e) => {
    if (e.target === el.infoModal) el.infoModal.style.display = "none";
  });

  document.addEventListener("keydown", (e) => {
    switch (e.key) {
      case "ArrowLeft": goTo(state.currentFrame - 1); break;
      case "ArrowRight": goTo(state.currentFrame + 1); break;
      case "Home": goTo(0); break;
      case "End": goTo(last); break;
      case " ": togglePlay(); e.preventDefault(); break;
    }
  });

  el.totalSteps.textContent = last + 1;
  setupComparisonSlider();
  updateFrame();
})();
`
